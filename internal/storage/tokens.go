// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state for storefront-tui.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/util"
)

// =============================================================================
// TOKEN STORE INTERFACE
// =============================================================================

// ErrNoTokens indicates no token pair is persisted. Callers treat this as
// "logged out", not as a failure.
var ErrNoTokens = errors.New("no stored tokens")

// TokenStore persists the authentication token pair. All writes are
// whole-object: there is no partial update of a stored pair.
type TokenStore interface {
	// Load returns the stored pair, or ErrNoTokens if absent.
	Load() (*model.TokenPair, error)
	// Save replaces the stored pair.
	Save(tokens *model.TokenPair) error
	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear() error
}

// =============================================================================
// FILE TOKEN STORE
// =============================================================================

// tokensFileName is the fixed name of the serialized token pair.
const tokensFileName = "tokens.json"

// FileTokenStore persists the token pair as a JSON file under the base
// directory (default: ~/.storefront/). The file is written 0600 since it
// holds live credentials.
type FileTokenStore struct {
	// BaseDir is the directory holding the tokens file.
	BaseDir string
}

// NewFileTokenStore creates a token store rooted at ~/.storefront/.
func NewFileTokenStore() (*FileTokenStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".storefront")
	return NewFileTokenStoreWithDir(baseDir)
}

// NewFileTokenStoreWithDir creates a token store rooted at a custom directory.
func NewFileTokenStoreWithDir(baseDir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}

	return &FileTokenStore{BaseDir: baseDir}, nil
}

// path returns the full path of the tokens file.
func (s *FileTokenStore) path() string {
	return filepath.Join(s.BaseDir, tokensFileName)
}

// Load reads the stored token pair.
func (s *FileTokenStore) Load() (*model.TokenPair, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTokens
		}
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}

	var pair model.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}
	if pair.Empty() {
		return nil, ErrNoTokens
	}

	return &pair, nil
}

// Save writes the token pair, replacing any stored pair. The write is
// atomic so a crash never leaves a truncated file.
func (s *FileTokenStore) Save(tokens *model.TokenPair) error {
	if tokens.Empty() {
		return errors.New("refusing to save empty token pair")
	}

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize tokens: %w", err)
	}

	if err := util.AtomicWriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}

	return nil
}

// Clear removes the stored token pair.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove tokens: %w", err)
	}
	return nil
}

// =============================================================================
// MEMORY TOKEN STORE
// =============================================================================

// MemoryTokenStore is an in-memory TokenStore for tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	pair  *model.TokenPair
	Saves int // Number of Save calls, for assertions
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the stored pair, or ErrNoTokens.
func (s *MemoryTokenStore) Load() (*model.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil {
		return nil, ErrNoTokens
	}
	copied := *s.pair
	return &copied, nil
}

// Save replaces the stored pair.
func (s *MemoryTokenStore) Save(tokens *model.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *tokens
	s.pair = &copied
	s.Saves++
	return nil
}

// Clear removes the stored pair.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}
