package menu

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"

	"catalog-client/internal/app/apptest"
	"catalog-client/internal/console"
	"catalog-client/internal/database"
	"catalog-client/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginAs = "FROM Users WHERE name = ? AND password = ?"

func TestPermittedMatchesRoleSets(t *testing.T) {
	sets := map[models.UserRole][]int{
		models.RoleCustomer: {1, 2, 3, 4, 20},
		models.RoleManager:  {1, 2, 3, 4, 5, 6, 7, 8, 9, 20},
		models.RoleAdmin:    {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 20},
	}
	for role, allowed := range sets {
		for choice := -1; choice <= 70; choice++ {
			want := false
			for _, a := range allowed {
				if a == choice {
					want = true
				}
			}
			assert.Equal(t, want, Permitted(role, choice), "role %s choice %d", role, choice)
		}
	}
	assert.False(t, Permitted("", 1))
}

func TestEveryActionHasHandler(t *testing.T) {
	for _, e := range actionEntries {
		if e.Choice == choiceLogout {
			continue
		}
		assert.NotNil(t, e.Handler, "choice %d", e.Choice)
	}
}

func TestExitFromLoginMenu(t *testing.T) {
	h := apptest.NewHarness("9\n", nil)
	require.NoError(t, Run(context.Background(), h.Env))
	assert.Contains(t, h.Out.String(), "1. Create user\n2. Log in\n9. < EXIT\n")
}

func TestUnrecognizedLoginChoice(t *testing.T) {
	h := apptest.NewHarness("5\n9\n", nil)
	require.NoError(t, Run(context.Background(), h.Env))
	assert.Equal(t, 2, strings.Count(h.Out.String(), "9. < EXIT"))
	assert.Contains(t, h.Out.String(), "Unrecognized choice!")
}

func TestCustomerCannotReachManagerAction(t *testing.T) {
	h := apptest.NewHarness("2\ncy\npw\n7\n20\n9\n", nil)
	h.DB.OnQuery(loginAs, [][]string{{"5", "customer  "}})

	require.NoError(t, Run(context.Background(), h.Env))

	out := h.Out.String()
	assert.Contains(t, out, "Unrecognized choice!")
	assert.Contains(t, out, "4. View 5 recent orders")
	assert.NotContains(t, out, "7. View 5 Popular Items")
	require.Len(t, h.DB.Queries, 1, "only the login query may run")
	assert.False(t, h.Env.Session.Authenticated())
}

func TestManagerAndAdminMenus(t *testing.T) {
	h := apptest.NewHarness("2\nmo\npw\n20\n2\nroot\npw\n20\n9\n", nil)
	h.DB.OnQuery(loginAs, [][]string{{"8", "manager   "}}, [][]string{{"1", "admin     "}})

	require.NoError(t, Run(context.Background(), h.Env))

	out := h.Out.String()
	assert.Equal(t, 2, strings.Count(out, "9. Place Product Supply Request to Warehouse"))
	assert.Equal(t, 1, strings.Count(out, "11. Update user info"))
}

func TestLogoutClearsSession(t *testing.T) {
	h := apptest.NewHarness("2\ncy\npw\n1\n20\n", nil)
	h.DB.OnQuery(loginAs, [][]string{{"5", "customer  "}})
	h.DB.OnQuery("FROM Users WHERE userID", [][]string{{"0", "0"}})
	h.DB.OnQuery("FROM Store", [][]string{{"1", "0", "0"}})

	err := Run(context.Background(), h.Env)
	assert.ErrorIs(t, err, console.ErrInputClosed)
	assert.False(t, h.Env.Session.Authenticated())
	assert.Empty(t, h.Env.Session.Nearby)
}

func TestLoginFailureReturnsToLoginMenu(t *testing.T) {
	h := apptest.NewHarness("2\nx\ny\n9\n", nil)
	require.NoError(t, Run(context.Background(), h.Env))
	assert.Contains(t, h.Err.String(), "Login failed")
	assert.False(t, h.Env.Session.Authenticated())
}

func TestDatabaseErrorKeepsSession(t *testing.T) {
	h := apptest.NewHarness("2\ncy\npw\n1\n20\n9\n", nil)
	h.DB.OnQuery(loginAs, [][]string{{"5", "customer  "}})
	h.DB.OnError("FROM Users WHERE userID", &database.Error{Op: "query", Code: "42P01", Err: &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}})

	require.NoError(t, Run(context.Background(), h.Env))
	assert.Contains(t, h.Err.String(), "SQL Exception (42P01): relation does not exist")
}

func TestConnectionLossEndsRun(t *testing.T) {
	h := apptest.NewHarness("2\ncy\npw\n1\n20\n9\n", nil)
	h.DB.OnQuery(loginAs, [][]string{{"5", "customer  "}})
	h.DB.OnError("FROM Users WHERE userID", &database.Error{Op: "query", Err: driver.ErrBadConn})

	err := Run(context.Background(), h.Env)
	assert.True(t, database.IsConnectionLost(err))
}

func TestCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := apptest.NewHarness("9\n", nil)
	assert.ErrorIs(t, Run(ctx, h.Env), context.Canceled)
}
