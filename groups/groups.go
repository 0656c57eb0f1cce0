// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package groups maps numeric voter IDs to the four fixed class groups.
package groups

import "strconv"

// Group labels
const (
	Group1 = "Group 1"
	Group2 = "Group 2"
	Group3 = "Group 3"
	Group4 = "Group 4"
)

type idRange struct {
	low, high int
	label     string
}

// Inclusive, non-overlapping.
var ranges = []idRange{
	{1100, 1150, Group1},
	{1200, 1250, Group2},
	{1300, 1350, Group3},
	{1400, 1450, Group4},
}

// Labels returns the group labels in order
func Labels() []string {
	labels := make([]string, len(ranges))
	for i, r := range ranges {
		labels[i] = r.label
	}
	return labels
}

// Resolve returns the group label for a voter ID, or "" when the ID is not
// purely numeric or falls outside every group range.
func Resolve(voterID string) string {
	if !IsNumeric(voterID) {
		return ""
	}
	id, err := strconv.Atoi(voterID)
	if err != nil {
		// Too many digits to fit an int
		return ""
	}
	for _, r := range ranges {
		if id >= r.low && id <= r.high {
			return r.label
		}
	}
	return ""
}

// IsNumeric reports whether s is non-empty and made only of ASCII digits.
// Signs, spaces and non-ASCII digits are rejected.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
