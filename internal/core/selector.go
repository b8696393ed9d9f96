// ABOUTME: Asset selector and windower for the summary pipeline
// ABOUTME: Filters work orders by asset, sorts by wonum and keeps the most recent K
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/harper/wosum/internal/models"
)

// NoRecordsError is returned when no work order matches the requested asset
type NoRecordsError struct {
	Asset string
}

func (e *NoRecordsError) Error() string {
	return fmt.Sprintf("no work orders found for asset %q", e.Asset)
}

// SelectWindow returns the last k work orders of asset in ascending wonum order.
// The input slice is not modified.
func SelectWindow(orders []models.WorkOrder, asset string, k int) ([]models.WorkOrder, error) {
	var matched []models.WorkOrder
	for _, wo := range orders {
		if wo.AssetNum == asset {
			matched = append(matched, wo)
		}
	}
	if len(matched) == 0 {
		return nil, &NoRecordsError{Asset: asset}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return CompareWONum(matched[i].WONum, matched[j].WONum) < 0
	})

	if k < 0 {
		k = 0
	}
	if k < len(matched) {
		matched = matched[len(matched)-k:]
	}
	return matched, nil
}

// CompareWONum orders work order numbers. Two numeric values compare numerically,
// a numeric value sorts before a non-numeric one, anything else compares bytewise.
func CompareWONum(a, b string) int {
	na, aok := parseWONum(a)
	nb, bok := parseWONum(b)

	switch {
	case aok && bok:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}

func parseWONum(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
