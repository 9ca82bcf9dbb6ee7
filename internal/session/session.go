package session

import (
	"slices"

	"catalog-client/internal/models"

	"github.com/google/uuid"
)

// Principal is the authenticated user.
type Principal struct {
	UserID int
	Role   models.UserRole
	Name   string
}

// Session is the only state that outlives a handler call.
type Session struct {
	ID        uuid.UUID
	Principal *Principal
	// Nearby holds the store ids found by the latest store lookup.
	Nearby []int
}

func New() *Session {
	return &Session{}
}

func (s *Session) Login(p Principal) {
	s.ID = uuid.New()
	s.Principal = &p
	s.Nearby = nil
}

func (s *Session) Logout() {
	s.ID = uuid.Nil
	s.Principal = nil
	s.Nearby = nil
}

func (s *Session) Authenticated() bool {
	return s.Principal != nil
}

// Role is empty before login.
func (s *Session) Role() models.UserRole {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Role
}

func (s *Session) UserID() int {
	if s.Principal == nil {
		return 0
	}
	return s.Principal.UserID
}

func (s *Session) SetNearby(ids []int) {
	s.Nearby = ids
}

func (s *Session) IsNearby(storeID int) bool {
	return slices.Contains(s.Nearby, storeID)
}
