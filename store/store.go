// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/who-pays/models"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDuplicateName    = errors.New("name already exists")
	ErrNotFound         = errors.New("entry not found")
	ErrNegativeCount    = errors.New("count must not be negative")
)

// Tally is the table of tally entries.
// Callers re-read with List after every mutation.
type Tally interface {
	// List returns all entries in creation order
	List(ctx context.Context) ([]models.Entry, error)
	// Insert creates an entry with count 0
	Insert(ctx context.Context, name string) (models.Entry, error)
	UpdateCount(ctx context.Context, name string, count int) error
	Delete(ctx context.Context, name string) error
}

// Preferences is a per-session string key/value store
type Preferences interface {
	Get(ctx context.Context, sessionID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sessionID, key, value string) error
}
