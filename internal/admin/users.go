// Package admin holds the user maintenance actions only offered to admins.
package admin

import (
	"context"
	"errors"
	"strings"

	"catalog-client/internal/app"
	"catalog-client/internal/models"
)

var ErrUserNotFound = errors.New("no user with that id")

const (
	allUsersSQL   = "SELECT * FROM Users"
	updateUserSQL = "UPDATE Users SET name = ?, password = ?, latitude = ?, longitude = ?, type = ? WHERE userID = ?"
)

// ViewUsers prints the whole Users table, one labelled line per user. Columns are read by
// position: userID, name, password, latitude, longitude, type.
func ViewUsers(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleAdmin); err != nil {
		return err
	}
	rows, err := env.DB.QueryCollect(ctx, allUsersSQL)
	if err != nil {
		return err
	}

	c := env.Console
	c.Banner("List all users:")
	for _, r := range rows {
		if len(r) < 6 {
			env.Logger().Warn("short Users row", "columns", len(r))
			continue
		}
		c.Printf("UserID: %s\tName: %-25sPassword: %s\tLatitude: %s\tLongitude: %s\tType: %s\n",
			strings.TrimSpace(r[0]), strings.TrimSpace(r[1]), r[2], r[3], r[4], strings.TrimSpace(r[5]))
	}
	c.Printf("\nTotal user(s): %d\n", len(rows))
	c.EndBanner()
	return nil
}

// UpdateUser overwrites every column of one user.
func UpdateUser(ctx context.Context, env *app.Env) error {
	if err := env.RequireRole(models.RoleAdmin); err != nil {
		return err
	}

	u, err := askUser(env)
	if err != nil {
		return err
	}
	affected, err := env.DB.Execute(ctx, updateUserSQL, u.Name, u.Password, u.Latitude, u.Longitude, string(u.Type), u.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	env.Logger().Info("user updated", "target", u.ID, "type", u.Type)
	env.Console.Println("User updated successfully.")
	return nil
}

func askUser(env *app.Env) (models.User, error) {
	c := env.Console
	var u models.User
	var err error

	if u.Name, err = c.Ask("Enter new name: "); err != nil {
		return u, err
	}
	if u.Password, err = c.Ask("Enter new password: "); err != nil {
		return u, err
	}
	lat, err := c.AskInt("Enter new latitude: ")
	if err != nil {
		return u, err
	}
	lon, err := c.AskInt("Enter new longitude: ")
	if err != nil {
		return u, err
	}
	u.Latitude, u.Longitude = float64(lat), float64(lon)

	for {
		raw, err := c.Ask("Enter new type (customer, manager, admin): ")
		if err != nil {
			return u, err
		}
		if u.Type, err = models.ParseRole(raw); err == nil {
			break
		}
		c.Println("Invalid user type.")
	}

	if u.ID, err = c.AskInt("Enter the userID to modify: "); err != nil {
		return u, err
	}
	return u, nil
}
