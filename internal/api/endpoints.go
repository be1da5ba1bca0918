// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Storefront API.
package api

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// API endpoint paths. The base path is configurable; these are fixed.
const (
	pathLogin        = "/auth/login/"
	pathRegister     = "/auth/register/"
	pathTokenRefresh = "/auth/token/refresh/"
	pathTokenVerify  = "/auth/token/verify/"
	pathLogout       = "/auth/logout/"
	pathProfile      = "/users/profile/"
	pathAvatar       = "/users/avatar/"
	pathProducts     = "/products/"
	pathTransactions = "/transactions/"
	pathStores       = "/stores/"
)

// messageResponse is the generic `{"message": ...}` acknowledgement body.
type messageResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a token pair.
//
// The call bypasses the auth transport: there is no token to attach yet, and
// a 401 here means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.TokenPair, error) {
	var pair model.TokenPair
	if err := c.post(withAuthBypass(ctx), pathLogin, creds, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates a new account and returns the server's acknowledgement.
func (c *Client) Register(ctx context.Context, data model.Registration) (string, error) {
	var resp messageResponse
	if err := c.post(withAuthBypass(ctx), pathRegister, data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refresh string) (*model.TokenPair, error) {
	var pair model.TokenPair
	in := map[string]string{"refresh": refresh}
	if err := c.post(withAuthBypass(ctx), pathTokenRefresh, in, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Verify asks the server whether a token is currently valid.
func (c *Client) Verify(ctx context.Context, token string) error {
	in := map[string]string{"token": token}
	return c.post(withAuthBypass(ctx), pathTokenVerify, in, nil)
}

// Logout invalidates the refresh token server-side. Callers treat failures
// as advisory; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	in := map[string]string{"refresh": refresh}
	return c.post(ctx, pathLogout, in, nil)
}

// =============================================================================
// PROFILE ENDPOINTS
// =============================================================================

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, pathProfile, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the profile and returns the
// updated user.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*model.User, error) {
	var user model.User
	if err := c.patch(ctx, pathProfile, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadAvatar uploads an avatar image and returns the updated user.
func (c *Client) UploadAvatar(ctx context.Context, fileName string, file io.Reader) (*model.User, error) {
	var user model.User
	if err := c.upload(ctx, pathAvatar, "file", fileName, file, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// =============================================================================
// LIST ENDPOINTS
// =============================================================================

// listQuery converts ListOptions to the API's query parameters.
func listQuery(opts model.ListOptions) url.Values {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.SortBy != "" {
		ordering := opts.SortBy
		if opts.SortDirection == model.SortDesc {
			ordering = "-" + ordering
		}
		query.Set("ordering", ordering)
	}
	return query
}

// ListProducts fetches one page of the product catalog.
func (c *Client) ListProducts(ctx context.Context, opts model.ListOptions) (*model.Page[model.Product], error) {
	var page model.Page[model.Product]
	if err := c.get(ctx, pathProducts, listQuery(opts), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListTransactions fetches one page of recorded transactions.
func (c *Client) ListTransactions(ctx context.Context, opts model.ListOptions) (*model.Page[model.Transaction], error) {
	var page model.Page[model.Transaction]
	if err := c.get(ctx, pathTransactions, listQuery(opts), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListStores fetches one page of stores.
func (c *Client) ListStores(ctx context.Context, opts model.ListOptions) (*model.Page[model.Store], error) {
	var page model.Page[model.Store]
	if err := c.get(ctx, pathStores, listQuery(opts), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
