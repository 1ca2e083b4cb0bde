// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/who-pays/models"
)

// Memory is an in-process Tally and Preferences store.
// Contents are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries []models.Entry
	prefs   map[string]map[string]string
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		prefs: make(map[string]map[string]string),
		now:   time.Now,
	}
}

func (m *Memory) List(ctx context.Context) ([]models.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]models.Entry, len(m.entries))
	copy(entries, m.entries)
	return entries, nil
}

func (m *Memory) Insert(ctx context.Context, name string) (models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if models.FindEntry(m.entries, name) >= 0 {
		return models.Entry{}, ErrDuplicateName
	}

	now := m.now().UTC()
	entry := models.Entry{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *Memory) UpdateCount(ctx context.Context, name string, count int) error {
	if count < 0 {
		return ErrNegativeCount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := models.FindEntry(m.entries, name)
	if i < 0 {
		return ErrNotFound
	}
	m.entries[i].Count = count
	m.entries[i].UpdatedAt = m.now().UTC()
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := models.FindEntry(m.entries, name)
	if i < 0 {
		return ErrNotFound
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

func (m *Memory) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.prefs[sessionID][key]
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefs[sessionID] == nil {
		m.prefs[sessionID] = make(map[string]string)
	}
	m.prefs[sessionID][key] = value
	return nil
}
