// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - AddEntryRequest: name
  - StartDrawRequest: mode ("uniform" or "minimum")

# Response Types

  - SessionResponse: privileged, dark_mode
  - EntriesResponse: entries
  - ErrorResponse: error, message

The board view model lives in the handlers package because it aggregates the
chart and draw state.

# Domain Types

  - Entry: name, count, created_at, updated_at

Helpers:

	low := models.MinCount(entries)
	i := models.FindEntry(entries, "Alice") // -1 when absent

# Preference Keys

	PrefCredential = "credential"
	PrefDarkMode   = "dark_mode"
*/
package models
