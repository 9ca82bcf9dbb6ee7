package inventory

import (
	"context"
	"errors"
	"fmt"

	"catalog-client/internal/app"
	"catalog-client/internal/database"
	"catalog-client/internal/models"
	"catalog-client/internal/stores"
)

var ErrInvalidUnits = errors.New("units must be larger than 0")

const (
	warehouseExistsSQL = "SELECT warehouseID FROM Warehouse WHERE warehouseID = ?"
	insertSupplySQL    = "INSERT INTO ProductSupplyRequests (managerID, warehouseID, storeID, productName, unitsRequested) VALUES (?, ?, ?, ?, ?)"
	restockSQL         = "UPDATE Product SET numberOfUnits = numberOfUnits + ? WHERE storeID = ? AND productName = ?"
)

// PlaceSupplyRequest asks a warehouse to replenish a product and books the units into stock.
func PlaceSupplyRequest(ctx context.Context, env *app.Env) error {
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

	var warehouseID int
	for {
		warehouseID, err = c.AskInt("\nEnter the warehouseID: ")
		if err != nil {
			return err
		}
		n, err := env.DB.QueryCount(ctx, warehouseExistsSQL, warehouseID)
		if err != nil {
			return err
		}
		if n > 0 {
			break
		}
		c.Println("\nWarehouse does not exist.")
	}

	units, err := c.AskIntWhere("\nEnter the number of units requesting: ",
		func(n int) bool { return n > 0 }, "\nNumber has to be larger than 0")
	if err != nil {
		return err
	}

	req := models.SupplyRequest{
		ManagerID:      env.Session.UserID(),
		WarehouseID:    warehouseID,
		StoreID:        storeID,
		ProductName:    name,
		UnitsRequested: units,
	}
	requestNumber, err := RequestSupply(ctx, env.DB, req)
	if err != nil {
		return err
	}

	env.Logger().Info("supply request placed", "store", storeID, "warehouse", warehouseID, "product", name, "units", units)
	if requestNumber > 0 {
		c.Printf("\nSupply request #%d placed: %d unit(s) of %s for store %d.\n", requestNumber, units, name, storeID)
	} else {
		c.Printf("\nSupply request placed: %d unit(s) of %s for store %d.\n", units, name, storeID)
	}
	return nil
}

// RequestSupply raises the stock and records the request in one transaction. It returns the
// request number, or -1 when it could not be read.
func RequestSupply(ctx context.Context, gw database.Gateway, req models.SupplyRequest) (int, error) {
	if req.UnitsRequested <= 0 {
		return 0, ErrInvalidUnits
	}

	// The restock goes first: a ProductUpdates trigger on it draws from its own sequence, and the
	// request number read afterwards must come from the insert.
	err := gw.Transaction(ctx, func(tx database.Gateway) error {
		affected, err := tx.Execute(ctx, restockSQL, req.UnitsRequested, req.StoreID, req.ProductName)
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("restock %q in store %d: %w", req.ProductName, req.StoreID, ErrProductNotFound)
		}
		_, err = tx.Execute(ctx, insertSupplySQL,
			req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.UnitsRequested)
		return err
	})
	if err != nil {
		return 0, err
	}
	return gw.LastSeqVal(ctx), nil
}
