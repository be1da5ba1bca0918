// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Storefront API.
//
// The client wraps a shared pooled http.Client with an authTransport
// decorator that attaches the current access token to every request and
// performs at most one silent refresh-and-retry when a request comes back
// 401. Token state itself is owned by the auth package; api only consumes it
// through the TokenSource interface.
//
// # Usage
//
//	client := api.NewClient("https://shop.example.com/api").
//	    WithTimeout(15 * time.Second).
//	    WithTokenSource(manager)
//
//	page, err := client.ListProducts(ctx, model.ListOptions{PageSize: 20})
package api
