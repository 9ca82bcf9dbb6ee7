package audit

import (
	"context"
	"testing"

	"catalog-client/internal/app"
	"catalog-client/internal/app/apptest"
	"catalog-client/internal/models"
	"catalog-client/internal/session"
	"catalog-client/internal/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manager = &session.Principal{UserID: 8, Role: models.RoleManager, Name: "mo"}

func TestViewRecentUpdatesReadsUpdateLog(t *testing.T) {
	h := apptest.NewHarness("", manager)
	h.DB.OnQuery("WHERE managerID", [][]string{{"3"}})
	h.DB.OnQuery("FROM ProductUpdates", [][]string{
		{"14", "8", "3", "milk", "2026-03-02 10:00:00"},
		{"11", "8", "3", "bread", "2026-03-01 09:00:00"},
	})

	require.NoError(t, ViewRecentUpdates(context.Background(), h.Env))

	require.Len(t, h.DB.Queries, 2)
	assert.Equal(t, "SELECT * FROM ProductUpdates WHERE storeID = ? ORDER BY updatedOn DESC LIMIT 5", h.DB.Queries[1].Query)
	assert.Equal(t, []any{3}, h.DB.Queries[1].Args)

	out := h.Out.String()
	assert.Contains(t, out, "5 MOST RECENT PRODUCT UPDATES:")
	assert.Contains(t, out, "1. Update #: 14\t Product name: milk\t ManagerID: 8\t Time: 2026-03-02 10:00:00")
	assert.Contains(t, out, "2. Update #: 11\t Product name: bread")
}

func TestViewRecentUpdatesEmpty(t *testing.T) {
	h := apptest.NewHarness("", manager)
	h.DB.OnQuery("WHERE managerID", [][]string{{"3"}})

	require.NoError(t, ViewRecentUpdates(context.Background(), h.Env))
	assert.Contains(t, h.Out.String(), "No product updates recorded for this store.")
}

func TestViewRecentUpdatesNoManagedStore(t *testing.T) {
	h := apptest.NewHarness("", manager)
	assert.ErrorIs(t, ViewRecentUpdates(context.Background(), h.Env), stores.ErrNoManagedStores)
}

func TestViewRecentUpdatesForbiddenForCustomer(t *testing.T) {
	h := apptest.NewHarness("", &session.Principal{UserID: 5, Role: models.RoleCustomer})
	assert.ErrorIs(t, ViewRecentUpdates(context.Background(), h.Env), app.ErrForbidden)
	assert.Empty(t, h.DB.Queries)
}
