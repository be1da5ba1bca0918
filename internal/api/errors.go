// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Storefront API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error variables for common API failures.
var (
	// ErrNotConfigured indicates the client has no base URL.
	ErrNotConfigured = errors.New("API base URL not configured")

	// ErrUnauthorized indicates the request was rejected as unauthenticated,
	// after any silent refresh attempt already ran.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user lacks permission.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates the server failed or is unreachable.
	ErrUnavailable = errors.New("service unavailable")
)

// APIError represents an error response from the Storefront API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
}

// apiErrorResponse covers the two error body shapes the API emits:
// {"detail": "..."} for framework-level errors and
// {"error": {"code": ..., "message": ...}} for application errors.
type apiErrorResponse struct {
	Detail string `json:"detail"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorFromResponse converts an HTTP error status and body to a Go error.
// Well-known statuses map to sentinel errors so callers can use errors.Is.
func errorFromResponse(statusCode int, body []byte) error {
	apiErr := &APIError{Status: statusCode, Message: http.StatusText(statusCode)}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error.Message != "":
			apiErr.Code = parsed.Error.Code
			apiErr.Message = parsed.Error.Message
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	}
	if statusCode >= 500 {
		return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
	}
	return apiErr
}

// IsUnauthorized reports whether err stems from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotConfigured reports whether err means the client has no base URL.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
