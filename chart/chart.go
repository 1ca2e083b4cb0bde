// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chart

import (
	"github.com/danielhkuo/who-pays/models"
)

// Palette
const (
	ColorMinimum   = "#EF4444"
	ColorDefault   = "#3B82F6"
	ColorLabelDark = "#FFFFFF"
	ColorLabel     = "#1F2937"
)

// Bar is one column of the tally chart
type Bar struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Height     int    `json:"height"` // percent of the tallest bar
	Color      string `json:"color"`
	LabelColor string `json:"label_color"`
	Minimum    bool   `json:"minimum"`
	Latest     bool   `json:"latest"`
}

// Chart is the bar-chart view of the tally
type Chart struct {
	Bars     []Bar `json:"bars"`
	MinCount int   `json:"min_count"`
	MaxCount int   `json:"max_count"`
}

// Build lays out one bar per entry, in list order.
// Bars at the minimum count are red. The label of the most recently updated
// entry is blue, other minimum labels are red, the rest follow the theme.
func Build(entries []models.Entry, dark bool) Chart {
	c := Chart{Bars: []Bar{}}
	if len(entries) == 0 {
		return c
	}

	c.MinCount = models.MinCount(entries)
	for _, e := range entries {
		if e.Count > c.MaxCount {
			c.MaxCount = e.Count
		}
	}
	latest := latestUpdate(entries)

	for _, e := range entries {
		b := Bar{
			Name:    e.Name,
			Count:   e.Count,
			Minimum: e.Count == c.MinCount,
			Latest:  e.UpdatedAt.Equal(entries[latest].UpdatedAt),
		}
		if c.MaxCount > 0 {
			b.Height = e.Count * 100 / c.MaxCount
		}

		b.Color = ColorDefault
		if b.Minimum {
			b.Color = ColorMinimum
		}

		switch {
		case b.Latest:
			b.LabelColor = ColorDefault
		case b.Minimum:
			b.LabelColor = ColorMinimum
		case dark:
			b.LabelColor = ColorLabelDark
		default:
			b.LabelColor = ColorLabel
		}

		c.Bars = append(c.Bars, b)
	}

	return c
}

// latestUpdate returns the index of the most recently updated entry.
// Ties go to the later entry in the list.
func latestUpdate(entries []models.Entry) int {
	best := 0
	for i := 1; i < len(entries); i++ {
		if !entries[best].UpdatedAt.After(entries[i].UpdatedAt) {
			best = i
		}
	}
	return best
}
