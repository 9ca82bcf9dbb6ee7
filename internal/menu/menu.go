// Package menu runs the two menu loops: the login menu and, once authenticated, the action
// menu whose entries depend on the user's role.
package menu

import (
	"context"
	"errors"

	"catalog-client/internal/admin"
	"catalog-client/internal/app"
	"catalog-client/internal/audit"
	"catalog-client/internal/auth"
	"catalog-client/internal/console"
	"catalog-client/internal/database"
	"catalog-client/internal/inventory"
	"catalog-client/internal/models"
	"catalog-client/internal/orders"
	"catalog-client/internal/stores"
)

const (
	choiceExit   = 9
	choiceLogout = 20
)

// Entry is one numbered menu line. MinRole is empty for the login menu.
type Entry struct {
	Choice  int
	Label   string
	MinRole models.UserRole
	Handler app.Handler
}

var loginEntries = []Entry{
	{Choice: 1, Label: "Create user", Handler: auth.CreateUser},
	{Choice: 2, Label: "Log in", Handler: auth.LoginHandler},
	{Choice: choiceExit, Label: "< EXIT"},
}

var actionEntries = []Entry{
	{1, "View Stores within 30 miles", models.RoleCustomer, stores.ViewStores},
	{2, "View Product List", models.RoleCustomer, inventory.ViewProducts},
	{3, "Place a Order", models.RoleCustomer, orders.PlaceOrder},
	{4, "View 5 recent orders", models.RoleCustomer, orders.ViewRecentOrders},
	{5, "Update Product", models.RoleManager, inventory.UpdateProduct},
	{6, "View 5 recent Product Updates Info", models.RoleManager, audit.ViewRecentUpdates},
	{7, "View 5 Popular Items", models.RoleManager, orders.ViewPopularProducts},
	{8, "View 5 Popular Customers", models.RoleManager, orders.ViewPopularCustomers},
	{9, "Place Product Supply Request to Warehouse", models.RoleManager, inventory.PlaceSupplyRequest},
	{10, "View user info", models.RoleAdmin, admin.ViewUsers},
	{11, "Update user info", models.RoleAdmin, admin.UpdateUser},
	{choiceLogout, "Log out", models.RoleCustomer, nil},
}

func find(entries []Entry, choice int) (Entry, bool) {
	for _, e := range entries {
		if e.Choice == choice {
			return e, true
		}
	}
	return Entry{}, false
}

// Permitted reports whether role may run the action menu entry numbered choice.
func Permitted(role models.UserRole, choice int) bool {
	e, ok := find(actionEntries, choice)
	return ok && role.AtLeast(e.MinRole) && role.Allows(choice)
}

// Run drives the login menu until the user exits. It returns nil on exit and an error only
// when the session cannot go on: input closed, connection lost or ctx cancelled.
func Run(ctx context.Context, env *app.Env) error {
	c := env.Console
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.Banner("MAIN MENU")
		for _, e := range loginEntries {
			c.Printf("%d. %s\n", e.Choice, e.Label)
		}
		c.EndBanner()

		choice, err := c.ReadChoice(true, nil)
		if err != nil {
			return err
		}
		e, ok := find(loginEntries, choice)
		if !ok {
			c.Println("Unrecognized choice!")
			continue
		}
		if e.Choice == choiceExit {
			return nil
		}
		if err := dispatch(ctx, env, e.Handler); err != nil {
			return err
		}

		if env.Session.Authenticated() {
			if err := runActions(ctx, env); err != nil {
				return err
			}
		}
	}
}

func runActions(ctx context.Context, env *app.Env) error {
	c := env.Console
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		role := env.Session.Role()

		c.Banner("MAIN MENU")
		for _, e := range actionEntries {
			if e.Choice == choiceLogout {
				c.Println(".........................")
			}
			if Permitted(role, e.Choice) {
				c.Printf("%d. %s\n", e.Choice, e.Label)
			}
		}
		c.EndBanner()

		choice, err := c.ReadChoice(false, role.Allows)
		if err != nil {
			return err
		}
		if choice == choiceLogout {
			env.Logger().Info("logout")
			env.Session.Logout()
			return nil
		}
		if !Permitted(role, choice) {
			c.Println("Unrecognized choice!")
			continue
		}
		e, _ := find(actionEntries, choice)
		if err := dispatch(ctx, env, e.Handler); err != nil {
			return err
		}
	}
}

// dispatch runs one handler. Handler failures are reported and swallowed; only errors that
// end the session are returned.
func dispatch(ctx context.Context, env *app.Env, h app.Handler) error {
	err := h(ctx, env)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrInputClosed), errors.Is(err, context.Canceled), database.IsConnectionLost(err):
		return err
	case errors.Is(err, auth.ErrLoginFailed):
		env.Console.Errorln("Login failed: " + err.Error())
	default:
		env.Console.Errorln(err)
	}
	env.Logger().Warn("action failed", "error", err)
	return nil
}
