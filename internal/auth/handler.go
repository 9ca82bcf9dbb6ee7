package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"catalog-client/internal/app"
	"catalog-client/internal/models"
	"catalog-client/internal/session"
)

// ErrLoginFailed means the name/password pair did not match exactly one user.
var ErrLoginFailed = errors.New("invalid name or password")

const (
	insertUserSQL = "INSERT INTO Users (name, password, latitude, longitude, type) VALUES (?, ?, ?, ?, ?)"
	loginSQL      = "SELECT userID, type FROM Users WHERE name = ? AND password = ?"
)

// CreateUser registers a new customer. Uniqueness is left to the schema.
func CreateUser(ctx context.Context, env *app.Env) error {
	c := env.Console

	name, err := c.Ask("\n\tEnter name: ")
	if err != nil {
		return err
	}
	password, err := c.Ask("\tEnter password: ")
	if err != nil {
		return err
	}
	latitude, err := c.AskFloat("\tEnter latitude: ")
	if err != nil {
		return err
	}
	longitude, err := c.AskFloat("\tEnter longitude: ")
	if err != nil {
		return err
	}

	if _, err := env.DB.Execute(ctx, insertUserSQL, name, password, latitude, longitude, string(models.RoleCustomer)); err != nil {
		return err
	}

	env.Logger().Info("user created", "name", name)
	c.Println("User successfully created!")
	return nil
}

// Login checks the credentials and fills the session on success. It returns the user name,
// or "" with ErrLoginFailed when no single user matches.
func Login(ctx context.Context, env *app.Env) (string, error) {
	c := env.Console

	name, err := c.Ask("\n\tEnter name: ")
	if err != nil {
		return "", err
	}
	password, err := c.Ask("\tEnter password: ")
	if err != nil {
		return "", err
	}

	rows, err := env.DB.QueryCollect(ctx, loginSQL, name, password)
	if err != nil {
		return "", err
	}
	if len(rows) != 1 {
		env.Logger().Info("login rejected", "name", name, "matches", len(rows))
		return "", ErrLoginFailed
	}

	userID, err := strconv.Atoi(rows[0][0])
	if err != nil {
		return "", err
	}
	role, err := models.ParseRole(rows[0][1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	env.Session.Login(session.Principal{UserID: userID, Role: role, Name: name})
	env.Logger().Info("login", "name", name, "role", role)
	// the short id matches the session attribute on log lines
	c.Printf("\nWelcome %s (%s). Session %s\n", name, role, env.Session.ID.String()[:8])
	return name, nil
}

// LoginHandler adapts Login to the menu: a failed login is reported, not fatal.
func LoginHandler(ctx context.Context, env *app.Env) error {
	_, err := Login(ctx, env)
	return err
}
