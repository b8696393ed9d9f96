// ABOUTME: Tests for asset selection, wonum ordering and windowing
// ABOUTME: Verifies the most-recent-K window and the no-records error
package core

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/harper/wosum/internal/models"
)

func order(wonum, asset, code string, hrs float64) models.WorkOrder {
	return models.WorkOrder{WONum: wonum, AssetNum: asset, FailureCode: code, LaborHrs: hrs}
}

func wonums(orders []models.WorkOrder) []string {
	out := make([]string, len(orders))
	for i, wo := range orders {
		out[i] = wo.WONum
	}
	return out
}

func TestSelectWindow_MostRecentK(t *testing.T) {
	// Twelve HVAC-321 rows in scrambled order plus noise from another asset
	var orders []models.WorkOrder
	for _, n := range []int{7, 12, 1, 3, 10, 2, 9, 4, 11, 5, 8, 6} {
		orders = append(orders, order(strconv.Itoa(n), "HVAC-321", "MECH", 1))
		orders = append(orders, order(strconv.Itoa(n+100), "PUMP-7", "ELEC", 1))
	}

	window, err := SelectWindow(orders, "HVAC-321", 10)
	if err != nil {
		t.Fatalf("SelectWindow failed: %v", err)
	}

	want := "3,4,5,6,7,8,9,10,11,12"
	if got := strings.Join(wonums(window), ","); got != want {
		t.Errorf("window = %s, want %s", got, want)
	}
	for _, wo := range window {
		if wo.AssetNum != "HVAC-321" {
			t.Errorf("window contains asset %s", wo.AssetNum)
		}
	}
}

func TestSelectWindow_Sizes(t *testing.T) {
	orders := []models.WorkOrder{
		order("3", "A", "", 1),
		order("1", "A", "", 1),
		order("2", "A", "", 1),
	}

	tests := []struct {
		name string
		k    int
		want string
	}{
		{"fewer than k", 10, "1,2,3"},
		{"exactly k", 3, "1,2,3"},
		{"last two", 2, "2,3"},
		{"zero", 0, ""},
		{"negative treated as zero", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := SelectWindow(orders, "A", tt.k)
			if err != nil {
				t.Fatalf("SelectWindow failed: %v", err)
			}
			if got := strings.Join(wonums(window), ","); got != tt.want {
				t.Errorf("window = %q, want %q", got, tt.want)
			}
		})
	}

	// Input order must be untouched
	if got := strings.Join(wonums(orders), ","); got != "3,1,2" {
		t.Errorf("input reordered: %s", got)
	}
}

func TestSelectWindow_NoRecords(t *testing.T) {
	orders := []models.WorkOrder{order("1", "HVAC-321", "MECH", 1)}

	tests := []struct {
		name  string
		asset string
	}{
		{"unknown asset", "PUMP-9"},
		{"case differs", "hvac-321"},
		{"empty asset", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectWindow(orders, tt.asset, 10)
			var noRecords *NoRecordsError
			if !errors.As(err, &noRecords) {
				t.Fatalf("expected *NoRecordsError, got %v", err)
			}
			if noRecords.Asset != tt.asset {
				t.Errorf("Asset = %q, want %q", noRecords.Asset, tt.asset)
			}
			if !strings.Contains(err.Error(), strconv.Quote(tt.asset)) {
				t.Errorf("error should name the asset: %v", err)
			}
		})
	}

	if _, err := SelectWindow(nil, "HVAC-321", 10); err == nil {
		t.Error("expected error for empty dataset")
	}
}

func TestCompareWONum(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"9", "10", -1},
		{"10", "9", 1},
		{"100", "100", 0},
		{"1.5", "2", -1},
		{" 7", "8", -1},
		{"10", "A1", -1},
		{"A1", "10", 1},
		{"A10", "A9", -1},
		{"WO-2", "WO-2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := CompareWONum(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareWONum(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSelectWindow_MixedWONumsStable(t *testing.T) {
	orders := []models.WorkOrder{
		order("B7", "A", "first-B7", 1),
		order("20", "A", "", 1),
		order("B7", "A", "second-B7", 1),
		order("3", "A", "", 1),
		order("03", "A", "", 1),
	}

	window, err := SelectWindow(orders, "A", 10)
	if err != nil {
		t.Fatalf("SelectWindow failed: %v", err)
	}

	if got := strings.Join(wonums(window), ","); got != "3,03,20,B7,B7" {
		t.Errorf("window = %s", got)
	}
	if window[3].FailureCode != "first-B7" || window[4].FailureCode != "second-B7" {
		t.Errorf("equal keys lost input order: %+v", window[3:])
	}
}
