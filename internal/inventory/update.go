package inventory

import (
	"context"

	"catalog-client/internal/app"
	"catalog-client/internal/models"
	"catalog-client/internal/stores"

	"github.com/shopspring/decimal"
)

// The ProductUpdates log row is written by a trigger on this statement.
const updateProductSQL = "UPDATE Product SET numberOfUnits = ?, pricePerUnit = ? WHERE storeID = ? AND productName = ?"

// UpdateProduct overwrites stock and price of a product in a store the manager runs.
func UpdateProduct(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleManager); err != nil {
		return err
	}
	c := env.Console

	storeID, err := stores.SelectManagedStore(ctx, env)
	if err != nil {
		return err
	}
	if _, err := ListProducts(ctx, env, storeID); err != nil {
		return err
	}
	name, err := AskProductName(ctx, env, storeID)
	if err != nil {
		return err
	}

	nonNegative := func(n int) bool { return n >= 0 }
	units, err := c.AskIntWhere("Enter the new number of units: ", nonNegative, "Number cannot be negative")
	if err != nil {
		return err
	}
	price, err := c.AskIntWhere("Enter the new price per unit: ", nonNegative, "Price cannot be negative")
	if err != nil {
		return err
	}

	affected, err := env.DB.Execute(ctx, updateProductSQL, units, decimal.NewFromInt(int64(price)), storeID, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	env.Logger().Info("product updated", "store", storeID, "product", name, "units", units, "price", price)
	c.Println("Product updated successfully.")
	return nil
}
