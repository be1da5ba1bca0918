// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the Storefront API.
//
// This package defines the core domain types used throughout the application
// for representing users, authentication material, and the inventory/sales
// entities the client renders.
//
// # Key Types
//
//   - User: The authenticated identity (id, name, email, role, avatar)
//   - Role: User role enumeration (admin, manager, cashier)
//   - TokenPair: Opaque access/refresh token pair
//   - Page: Generic paginated API response envelope
//   - Product, Store, Stock, Transaction: Inventory and sales entities
//
// # Usage
//
// Decode a paginated listing:
//
//	var page model.Page[model.Product]
//	if err := json.Unmarshal(body, &page); err != nil { ... }
//	fmt.Printf("%d of %d products\n", len(page.Results), page.Count)
package model
