// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the Storefront API.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents a user's access role.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleCashier Role = "CASHIER"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Manager"
	case RoleCashier:
		return "Cashier"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// =============================================================================
// USER TYPE
// =============================================================================

// User is the authenticated identity as returned by the profile endpoint.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      Role       `json:"role"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	IsActive  bool       `json:"isActive"`
	DateJoined time.Time `json:"dateJoined"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasRole reports whether the user's role is a member of the given set.
// An empty set matches every user.
func (u *User) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// =============================================================================
// AUTHENTICATION TYPES
// =============================================================================

// Credentials are the fields submitted to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the fields submitted to the registration endpoint.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenPair is the opaque access/refresh token pair issued at login and
// rotated on refresh. The client treats both values as opaque except for
// reading the access token's embedded expiry claim.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether the pair is missing either token.
func (t *TokenPair) Empty() bool {
	return t == nil || t.Access == "" || t.Refresh == ""
}
