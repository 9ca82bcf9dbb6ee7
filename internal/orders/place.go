package orders

import (
	"context"
	"errors"

	"catalog-client/internal/app"
	"catalog-client/internal/database"
	"catalog-client/internal/inventory"
	"catalog-client/internal/models"
	"catalog-client/internal/stores"
)

var (
	ErrInsufficientStock = errors.New("not enough units in stock for this order")
	ErrInvalidUnits      = errors.New("units ordered must be larger than 0")
)

const (
	// the stock guard keeps numberOfUnits from going negative
	takeStockSQL   = "UPDATE Product SET numberOfUnits = numberOfUnits - ? WHERE storeID = ? AND productName = ? AND numberOfUnits >= ?"
	insertOrderSQL = "INSERT INTO Orders (customerID, storeID, productName, unitsOrdered, orderTime) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)"
)

// PlaceOrder lets the user order from one of the stores near them.
func PlaceOrder(ctx context.Context, env *app.Env) error {
	if err := env.RequireLogin(); err != nil {
		return err
	}
	c := env.Console

	if err := stores.ViewStores(ctx, env); err != nil {
		return err
	}
	if len(env.Session.Nearby) == 0 {
		c.Println("You have no stores near you.")
		return nil
	}

	storeID, err := c.AskIntWhere("\nEnter one of the following storeID: ", env.Session.IsNearby, "\nInvalid store option.")
	if err != nil {
		return err
	}
	if _, err := inventory.ListProducts(ctx, env, storeID); err != nil {
		return err
	}
	name, err := inventory.AskProductName(ctx, env, storeID)
	if err != nil {
		return err
	}
	units, err := c.AskIntWhere("Enter the number of units: ", func(n int) bool { return n > 0 }, "Number has to be larger than 0")
	if err != nil {
		return err
	}

	order := models.Order{
		CustomerID:   env.Session.UserID(),
		StoreID:      storeID,
		ProductName:  name,
		UnitsOrdered: units,
	}
	orderNum, err := Place(ctx, env.DB, order)
	if err != nil {
		return err
	}

	env.Logger().Info("order placed", "store", storeID, "product", name, "units", units, "order", orderNum)
	if orderNum > 0 {
		c.Printf("\nOrder #%d placed successfully.\n", orderNum)
	} else {
		c.Println("\nOrder placed successfully.")
	}
	return nil
}

// Place takes the units out of stock and records the order atomically. Nothing is written
// when the store holds fewer units than ordered. It returns the order number or -1.
func Place(ctx context.Context, gw database.Gateway, o models.Order) (int, error) {
	if o.UnitsOrdered <= 0 {
		return 0, ErrInvalidUnits
	}

	err := gw.Transaction(ctx, func(tx database.Gateway) error {
		affected, err := tx.Execute(ctx, takeStockSQL, o.UnitsOrdered, o.StoreID, o.ProductName, o.UnitsOrdered)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		_, err = tx.Execute(ctx, insertOrderSQL, o.CustomerID, o.StoreID, o.ProductName, o.UnitsOrdered)
		return err
	})
	if err != nil {
		return 0, err
	}
	// the Orders insert is the last statement that drew from a sequence
	return gw.LastSeqVal(ctx), nil
}
