package models

import "time"

// Preference keys stored per session
const (
	PrefCredential = "credential"
	PrefDarkMode   = "dark_mode"
)

// Request types

type AddEntryRequest struct {
	Name string `json:"name"`
}

type StartDrawRequest struct {
	Mode string `json:"mode"`
}

// Response types

type SessionResponse struct {
	Privileged bool `json:"privileged"`
	DarkMode   bool `json:"dark_mode"`
}

type EntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// Domain types

// Entry is one tracked person and their running count.
// Name is the identity key.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MinCount returns the lowest count in the list, or 0 for an empty list
func MinCount(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	lowest := entries[0].Count
	for _, e := range entries[1:] {
		if e.Count < lowest {
			lowest = e.Count
		}
	}
	return lowest
}

// FindEntry returns the index of the entry with the given name, or -1
func FindEntry(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
