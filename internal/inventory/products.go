package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-client/internal/app"
	"catalog-client/internal/database"
	"catalog-client/internal/models"
)

var ErrProductNotFound = errors.New("product not found in this store")

const (
	storesSQL        = "SELECT storeID FROM Store"
	productListSQL   = "SELECT productName, numberOfUnits, pricePerUnit FROM Product WHERE storeID = ? ORDER BY productName"
	productExistsSQL = "SELECT productName FROM Product WHERE storeID = ? AND productName = ?"
)

// ViewProducts asks for a store id in [0, number of stores] and lists its products.
func ViewProducts(ctx context.Context, env *app.Env) error {
	storeCount, err := env.DB.QueryCount(ctx, storesSQL)
	if err != nil {
		return err
	}

	storeID, err := env.Console.AskIntWhere(
		fmt.Sprintf("\n\tEnter Store ID (0-%d): ", storeCount),
		func(id int) bool { return id >= 0 && id <= storeCount },
		fmt.Sprintf("Store Invalid! Please enter a store between 0 and %d", storeCount),
	)
	if err != nil {
		return err
	}

	_, err = ListProducts(ctx, env, storeID)
	return err
}

// ListProducts prints every product of storeID and returns how many there were.
func ListProducts(ctx context.Context, env *app.Env, storeID int) (int, error) {
	c := env.Console

	rows, err := env.DB.QueryCollect(ctx, productListSQL, storeID)
	if err != nil {
		return 0, err
	}

	c.Banner(fmt.Sprintf("List of products in store #%d:", storeID))
	for _, row := range rows {
		p, err := models.ParseProductRow(storeID, row)
		if err != nil {
			env.Logger().Warn("unparsable product row", "store", storeID, "error", err)
			c.Println("Product name: " + strings.Join(row, "\t"))
			continue
		}
		c.Printf("Product name: %s\t# of Units: %d\tPrice per unit: %s\n",
			p.Name, p.NumberOfUnits, p.PricePerUnit.StringFixed(2))
	}
	c.Printf("\nTotal product(s): %d\n", len(rows))
	c.EndBanner()
	return len(rows), nil
}

// ProductExists reports whether the store carries productName.
func ProductExists(ctx context.Context, gw database.Gateway, storeID int, productName string) (bool, error) {
	n, err := gw.QueryCount(ctx, productExistsSQL, storeID, productName)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AskProductName repeats the prompt until the name is a product of storeID.
func AskProductName(ctx context.Context, env *app.Env, storeID int) (string, error) {
	for {
		name, err := env.Console.Ask("Enter the product name: ")
		if err != nil {
			return "", err
		}
		ok, err := ProductExists(ctx, env.DB, storeID, name)
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
		env.Console.Println("Product does not exist.")
	}
}
