// ABOUTME: Statistics aggregator over a selection window
// ABOUTME: Counts failure codes and averages labor hours per code
package core

import (
	"math"
	"strconv"

	"github.com/harper/wosum/internal/models"
)

// Aggregate computes failure counts and mean labor hours per failure code.
// Work orders without a code are grouped under models.NoFailureCode.
func Aggregate(window []models.WorkOrder) models.WindowStats {
	failures := make(models.FailureStats)
	sums := make(map[string]float64)

	for _, wo := range window {
		code := wo.FailureCategory()
		failures[code]++
		sums[code] += wo.LaborHrs
	}

	averages := make(models.AverageHoursStats, len(sums))
	for code, sum := range sums {
		averages[code] = RoundHours(sum / float64(failures[code]))
	}

	return models.WindowStats{Failures: failures, AverageHours: averages}
}

// RoundHours rounds half up to 2 decimals. The scaled value is first settled to
// its 6-decimal form so binary artifacts like 1.005*100 = 100.49999... round up.
func RoundHours(h float64) float64 {
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(h*100, 'f', 6, 64), 64)
	if err != nil {
		scaled = h * 100
	}
	return math.Floor(scaled+0.5) / 100
}
