package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"catalog-client/internal/app"
	"catalog-client/internal/geo"
	"catalog-client/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user location not found")
	ErrNoManagedStores = errors.New("you do not manage any store")
)

const (
	userLocationSQL = "SELECT latitude, longitude FROM Users WHERE userID = ?"
	allStoresSQL    = "SELECT storeID, latitude, longitude FROM Store"
	managedSQL      = "SELECT storeID FROM Store WHERE managerID = ? ORDER BY storeID"
)

// ViewStores lists the stores within geo.NearbyRadius of the user and replaces the
// session's nearby set with them.
func ViewStores(ctx context.Context, env *app.Env) error {
	if err := env.RequireLogin(); err != nil {
		return err
	}
	c := env.Console

	rows, err := env.DB.QueryCollect(ctx, userLocationSQL, env.Session.UserID())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrUserNotFound
	}
	lat, err := strconv.ParseFloat(rows[0][0], 64)
	if err != nil {
		return fmt.Errorf("user latitude %q: %w", rows[0][0], err)
	}
	lon, err := strconv.ParseFloat(rows[0][1], 64)
	if err != nil {
		return fmt.Errorf("user longitude %q: %w", rows[0][1], err)
	}

	storeRows, err := env.DB.QueryCollect(ctx, allStoresSQL)
	if err != nil {
		return err
	}

	c.Banner("STORES WITHIN 30 MILES OF YOUR LOCATION:")
	nearby := make([]int, 0)
	for _, row := range storeRows {
		store, err := models.ParseStoreRow(row)
		if err != nil {
			env.Logger().Warn("skipping store row", "error", err)
			continue
		}
		d := geo.Distance(lat, lon, store.Latitude, store.Longitude)
		if !geo.Within(d) {
			continue
		}
		c.Printf("Store ID: %d\t\tDistance: %.2f miles\n", store.ID, d)
		nearby = append(nearby, store.ID)
	}
	if len(nearby) == 0 {
		c.Println("No stores found within 30 miles of your location.")
	}
	c.EndBanner()

	env.Session.SetNearby(nearby)
	return nil
}

// SelectManagedStore returns the store the user manages, asking when there is more than one.
func SelectManagedStore(ctx context.Context, env *app.Env) (int, error) {
	if err := env.RequireLogin(); err != nil {
		return 0, err
	}
	c := env.Console

	rows, err := env.DB.QueryCollect(ctx, managedSQL, env.Session.UserID())
	if err != nil {
		return 0, err
	}

	c.Banner("List of stores managing:")
	managed := make([]int, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return 0, fmt.Errorf("store id %q: %w", row[0], err)
		}
		managed = append(managed, id)
		c.Println(id)
	}
	c.EndBanner()

	switch len(managed) {
	case 0:
		return 0, ErrNoManagedStores
	case 1:
		c.Printf("\n%d have been automatically selected.\n\n", managed[0])
		return managed[0], nil
	}

	return c.AskIntWhere("Select one of the following storeID you manage: ",
		func(id int) bool { return slices.Contains(managed, id) },
		"\nInvalid store option.")
}
