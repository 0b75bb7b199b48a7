package models

import (
	"errors"
	"strings"
)

const (
	RoleCoach   = "coach"
	RoleAthlete = "athlete"
	RoleAdmin   = "admin"
)

type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Name           string `json:"name,omitempty"`
}

type NewUser struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
}

func (u *NewUser) Validate() error {
	u.Email = strings.TrimSpace(u.Email)
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Role == "" {
		u.Role = RoleAthlete
	}
	if !ValidRole(u.Role) {
		return errors.New("role must be one of 'coach', 'athlete', 'admin'")
	}
	return nil
}

type UserPatch struct {
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Role           *string `json:"role"`
	OrganizationID *string `json:"organizationId"`
	Name           *string `json:"name"`
}

func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.OrganizationID != nil {
		u.OrganizationID = *p.OrganizationID
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	return u
}

type UserFilter struct {
	Role           string
	OrganizationID string
}

func ValidRole(role string) bool {
	switch role {
	case RoleCoach, RoleAthlete, RoleAdmin:
		return true
	}
	return false
}
