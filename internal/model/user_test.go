// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "Administrator"},
		{RoleManager, "Manager"},
		{RoleCashier, "Cashier"},
		{Role("AUDITOR"), "AUDITOR"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleManager.Valid() {
		t.Error("MANAGER should be a valid role")
	}
	if Role("AUDITOR").Valid() {
		t.Error("unknown role should not be valid")
	}
	if Role("").Valid() {
		t.Error("empty role should not be valid")
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Ada", LastName: "Lovelace", Username: "ada"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada", Username: "ada"}, "Ada"},
		{"last only", User{LastName: "Lovelace", Username: "ada"}, "Lovelace"},
		{"username fallback", User{Username: "ada"}, "ada"},
		{"whitespace collapses to fallback", User{FirstName: "  ", Username: "ada"}, "ada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserHasRole(t *testing.T) {
	u := &User{Role: RoleManager}

	if !u.HasRole() {
		t.Error("empty role set should match every user")
	}
	if !u.HasRole(RoleManager) {
		t.Error("exact role should match")
	}
	if !u.HasRole(RoleAdmin, RoleManager) {
		t.Error("role present in the set should match")
	}
	if u.HasRole(RoleAdmin) {
		t.Error("manager should not match an admin-only set")
	}
}

func TestTokenPairEmpty(t *testing.T) {
	var nilPair *TokenPair
	if !nilPair.Empty() {
		t.Error("nil pair should be empty")
	}
	if !(&TokenPair{Access: "a"}).Empty() {
		t.Error("pair without a refresh token should be empty")
	}
	if !(&TokenPair{Refresh: "r"}).Empty() {
		t.Error("pair without an access token should be empty")
	}
	if (&TokenPair{Access: "a", Refresh: "r"}).Empty() {
		t.Error("complete pair should not be empty")
	}
}
