// ABOUTME: Statistics value types computed over a selection window
// ABOUTME: Provides stable display ordering for failure counts and average hours
package models

import "sort"

// NoFailureCode is the category label for work orders without a failure code
const NoFailureCode = "(none)"

// FailureStats maps failure code to occurrence count within a window
type FailureStats map[string]int

// AverageHoursStats maps failure code to mean labor hours, rounded to 2 decimals
type AverageHoursStats map[string]float64

// FailureCount is one display entry of FailureStats
type FailureCount struct {
	Code  string `json:"code" yaml:"code"`
	Count int    `json:"count" yaml:"count"`
}

// AverageHours is one display entry of AverageHoursStats
type AverageHours struct {
	Code  string  `json:"code" yaml:"code"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// Total returns the sum of all counts
func (fs FailureStats) Total() int {
	total := 0
	for _, n := range fs {
		total += n
	}
	return total
}

// Entries returns the counts ordered by descending count, ties broken lexically by code
func (fs FailureStats) Entries() []FailureCount {
	out := make([]FailureCount, 0, len(fs))
	for code, n := range fs {
		out = append(out, FailureCount{Code: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Codes returns the failure codes in display order
func (fs FailureStats) Codes() []string {
	entries := fs.Entries()
	codes := make([]string, len(entries))
	for i, e := range entries {
		codes[i] = e.Code
	}
	return codes
}

// EntriesIn returns the averages in the given code order.
// Codes missing from the map are skipped.
func (ah AverageHoursStats) EntriesIn(codes []string) []AverageHours {
	out := make([]AverageHours, 0, len(codes))
	for _, code := range codes {
		if h, ok := ah[code]; ok {
			out = append(out, AverageHours{Code: code, Hours: h})
		}
	}
	return out
}

// WindowStats bundles both statistics for one selection window
type WindowStats struct {
	Failures     FailureStats      `json:"failures" yaml:"failures"`
	AverageHours AverageHoursStats `json:"average_hours" yaml:"average_hours"`
}
