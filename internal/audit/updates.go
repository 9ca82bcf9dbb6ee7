// Package audit reads the product update log that the database keeps for every change to a
// Product row.
package audit

import (
	"context"

	"catalog-client/internal/app"
	"catalog-client/internal/models"
	"catalog-client/internal/stores"
)

// Rows are read by position, see models.ParseProductUpdateRow.
const recentUpdatesSQL = "SELECT * FROM ProductUpdates WHERE storeID = ? ORDER BY updatedOn DESC LIMIT 5"

// ViewRecentUpdates prints the five latest product updates of a managed store.
func ViewRecentUpdates(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleManager); err != nil {
		return err
	}
	storeID, err := stores.SelectManagedStore(ctx, env)
	if err != nil {
		return err
	}
	rows, err := env.DB.QueryCollect(ctx, recentUpdatesSQL, storeID)
	if err != nil {
		return err
	}

	c := env.Console
	c.Banner("5 MOST RECENT PRODUCT UPDATES:")
	for i, row := range rows {
		u, err := models.ParseProductUpdateRow(row)
		if err != nil {
			env.Logger().Warn("skipping product update row", "store", storeID, "error", err)
			continue
		}
		c.Printf("%d. Update #: %d\t Product name: %s\t ManagerID: %d\t Time: %s\n",
			i+1, u.UpdateNumber, u.ProductName, u.ManagerID, u.UpdatedOn)
	}
	if len(rows) == 0 {
		c.Println("No product updates recorded for this store.")
	}
	c.EndBanner()
	return nil
}
