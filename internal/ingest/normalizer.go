// ABOUTME: Record normalizer that renders a work order as canonical embedding text
// ABOUTME: Fixed labels and field order so identical rows always embed identically
package ingest

import (
	"strconv"
	"strings"

	"github.com/harper/wosum/internal/models"
)

// Normalize renders a work order as a single line using all five content fields.
// Empty fields render as empty text.
func Normalize(wo models.WorkOrder) string {
	var sb strings.Builder
	sb.WriteString("WO:")
	sb.WriteString(oneLine(wo.WONum))
	sb.WriteString(" | Desc:")
	sb.WriteString(oneLine(wo.Description))
	sb.WriteString(" | Details:")
	sb.WriteString(oneLine(wo.LongDescription))
	sb.WriteString(" | Failure:")
	sb.WriteString(oneLine(wo.FailureCode))
	sb.WriteString(" | Hours:")
	sb.WriteString(FormatHours(wo.LaborHrs))
	return sb.String()
}

// FormatHours renders labor hours with the shortest exact decimal form
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// oneLine collapses embedded line breaks so the rendering stays single-line
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
