package orders

import (
	"context"
	"strings"

	"catalog-client/internal/app"
	"catalog-client/internal/models"
	"catalog-client/internal/stores"
)

// Orders rows are read by position: order number, customerID, storeID, productName,
// unitsOrdered, orderTime.
const (
	recentByStoreSQL    = "SELECT * FROM Orders WHERE storeID = ? ORDER BY orderTime DESC LIMIT 5"
	recentByCustomerSQL = "SELECT * FROM Orders WHERE customerID = ? ORDER BY orderTime DESC LIMIT 5"
	popularProductsSQL  = "SELECT productName, SUM(unitsOrdered) AS totalUnitsOrdered FROM Orders " +
		"WHERE storeID = ? GROUP BY productName ORDER BY totalUnitsOrdered DESC LIMIT 5"
	popularCustomersSQL = "SELECT U.name AS customer_name, COUNT(O.customerID) AS order_count FROM Orders O " +
		"JOIN Users U ON O.customerID = U.userID WHERE O.storeID = ? " +
		"GROUP BY O.customerID, U.name ORDER BY order_count DESC LIMIT 5"
)

// ViewRecentOrders shows the five latest orders: a manager sees one of their stores,
// everyone else their own orders.
func ViewRecentOrders(ctx context.Context, env *app.Env) error {
	if err := env.RequireLogin(); err != nil {
		return err
	}
	c := env.Console

	if env.Session.Role() == models.RoleManager {
		storeID, err := stores.SelectManagedStore(ctx, env)
		if err != nil {
			return err
		}
		rows, err := env.DB.QueryCollect(ctx, recentByStoreSQL, storeID)
		if err != nil {
			return err
		}
		c.Banner("5 MOST RECENT ORDERS:")
		for i, r := range rows {
			c.Printf("%d. Product name: %s\t CustomerID: %s\t Units ordered: %s\t Order #: %s\t Time: %s\n",
				i+1, r[3], r[1], r[4], r[0], r[5])
		}
		c.EndBanner()
		return nil
	}

	rows, err := env.DB.QueryCollect(ctx, recentByCustomerSQL, env.Session.UserID())
	if err != nil {
		return err
	}
	c.Banner("5 MOST RECENT ORDERS:")
	for i, r := range rows {
		c.Printf("%d. Product name: %s\t Units ordered: %s\t Store: %s\t Order #: %s\t Time: %s\n",
			i+1, r[3], r[4], r[2], r[0], r[5])
	}
	if len(rows) == 0 {
		c.Println("You have not placed any orders yet.")
	}
	c.EndBanner()
	return nil
}

// ViewPopularProducts ranks a managed store's products by units sold.
func ViewPopularProducts(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleManager); err != nil {
		return err
	}
	storeID, err := stores.SelectManagedStore(ctx, env)
	if err != nil {
		return err
	}
	rows, err := env.DB.QueryCollect(ctx, popularProductsSQL, storeID)
	if err != nil {
		return err
	}

	c := env.Console
	c.Banner("5 MOST POPULAR PRODUCTS:")
	for i, r := range rows {
		c.Printf("%d. Product: %s\t\t Numbers sold: %s\n", i+1, r[0], r[1])
	}
	c.EndBanner()
	return nil
}

// ViewPopularCustomers ranks a managed store's customers by number of orders.
func ViewPopularCustomers(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleManager); err != nil {
		return err
	}
	storeID, err := stores.SelectManagedStore(ctx, env)
	if err != nil {
		return err
	}
	rows, err := env.DB.QueryCollect(ctx, popularCustomersSQL, storeID)
	if err != nil {
		return err
	}

	c := env.Console
	c.Banner("5 MOST POPULAR CUSTOMERS")
	for i, r := range rows {
		c.Printf("%d. Name: %s\t Number of orders: %s\n", i+1, displayName(r[0]), r[1])
	}
	c.EndBanner()
	return nil
}

// displayName shows generated login names like "jane.doe" or "jane_doe" as words.
func displayName(name string) string {
	return strings.NewReplacer(".", " ", "_", " ").Replace(strings.TrimSpace(name))
}
