package models

import (
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// ParseRole normalises the Users.type column. The column is CHAR(10) so values arrive padded.
func ParseRole(raw string) (UserRole, error) {
	switch role := UserRole(strings.ToLower(strings.TrimSpace(raw))); role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unknown user type %q", strings.TrimSpace(raw))
	}
}

// Rank orders roles so that every role inherits the menu of the ones below it.
func (r UserRole) Rank() int {
	switch r {
	case RoleCustomer:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r carries every permission of min.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.Rank() > 0 && r.Rank() >= min.Rank()
}

// Allows is the input filter applied while reading a menu choice.
// Admins are never filtered.
func (r UserRole) Allows(choice int) bool {
	switch r {
	case RoleCustomer:
		return (choice >= 1 && choice <= 4) || choice == 20
	case RoleManager:
		return (choice >= 1 && choice <= 9) || choice == 20
	case RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        int
	Name      string
	Password  string
	Latitude  float64
	Longitude float64
	Type      UserRole
}
