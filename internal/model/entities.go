// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the Storefront API.
package model

import "time"

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Category groups products for reporting and filtering.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Product is a sellable item in the catalog.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Description string   `json:"description"`
	SKU        string    `json:"sku"`
	Barcode    string    `json:"barcode"`
	Price      float64   `json:"price"`
	CostPrice  float64   `json:"costPrice"`
	CategoryID int64     `json:"categoryId"`
	Category   *Category `json:"category,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// =============================================================================
// STORE AND STOCK TYPES
// =============================================================================

// Store is a physical sales location.
type Store struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

// Stock is the on-hand quantity of a product at a store.
type Stock struct {
	ID           int64    `json:"id"`
	ProductID    int64    `json:"productId"`
	Product      *Product `json:"product,omitempty"`
	StoreID      int64    `json:"storeId"`
	Store        *Store   `json:"store,omitempty"`
	Quantity     int      `json:"quantity"`
	MinimumLevel int      `json:"minimumLevel"`
}

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// TransactionType categorizes a financial transaction.
type TransactionType string

const (
	TransactionSale       TransactionType = "SALE"
	TransactionRefund     TransactionType = "REFUND"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

// PaymentMethod identifies how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobile       PaymentMethod = "MOBILE_PAYMENT"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentOther        PaymentMethod = "OTHER"
)

// Transaction is a single till movement recorded by a cashier.
type Transaction struct {
	ID              int64           `json:"id"`
	CashierID       int64           `json:"cashierId"`
	Amount          float64         `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
}

// =============================================================================
// LISTING TYPES
// =============================================================================

// Page is the paginated envelope the API wraps around list results.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// SortDirection orders a listing ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListOptions are the query parameters accepted by list endpoints.
// Page is 1-based on the wire; a zero value means "server default".
type ListOptions struct {
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortDirection SortDirection
}
