// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state for storefront-tui.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// =============================================================================
// FILE TOKEN STORE TESTS
// =============================================================================

func newTestStore(t *testing.T) *FileTokenStore {
	t.Helper()
	store, err := NewFileTokenStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTokenStoreWithDir failed: %v", err)
	}
	return store
}

func TestFileTokenStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	if !errors.Is(err, ErrNoTokens) {
		t.Errorf("Load on empty store = %v, want ErrNoTokens", err)
	}
}

func TestFileTokenStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	pair := &model.TokenPair{Access: "acc-token", Refresh: "ref-token"}
	if err := store.Save(pair); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Access != "acc-token" || loaded.Refresh != "ref-token" {
		t.Errorf("Load = %+v, want saved pair", loaded)
	}
}

func TestFileTokenStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&model.TokenPair{Access: "a1", Refresh: "r1"}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(&model.TokenPair{Access: "a2", Refresh: "r2"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Access != "a2" {
		t.Errorf("Load.Access = %q, want last written pair", loaded.Access)
	}
}

func TestFileTokenStore_SaveRejectsEmptyPair(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&model.TokenPair{}); err == nil {
		t.Error("Save of empty pair should fail")
	}
}

func TestFileTokenStore_Clear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&model.TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrNoTokens) {
		t.Errorf("Load after Clear = %v, want ErrNoTokens", err)
	}

	// Clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestFileTokenStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	store := newTestStore(t)
	if err := store.Save(&model.TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(store.BaseDir, tokensFileName))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("tokens file mode = %o, want 0600", perm)
	}
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(filepath.Join(store.BaseDir, tokensFileName), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("Load of corrupt file should fail")
	}
}

// =============================================================================
// MEMORY TOKEN STORE TESTS
// =============================================================================

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()

	if _, err := store.Load(); !errors.Is(err, ErrNoTokens) {
		t.Errorf("Load on empty store = %v, want ErrNoTokens", err)
	}

	if err := store.Save(&model.TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Access != "a" {
		t.Errorf("Load.Access = %q, want %q", loaded.Access, "a")
	}
	if store.Saves != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoTokens) {
		t.Errorf("Load after Clear = %v, want ErrNoTokens", err)
	}
}
