// ABOUTME: Context builder that renders the window table and the summary prompt
// ABOUTME: The table format is fixed-width and parses back into its source rows
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harper/wosum/internal/ingest"
	"github.com/harper/wosum/internal/models"
)

// Table column headers
const (
	HeaderWONum       = "WO Number"
	HeaderFailureCode = "Failure Code"
	HeaderHours       = "Hours"
)

// GroundingInstruction closes every prompt
const GroundingInstruction = "Be precise. Use only the data shown above. Do not hallucinate data not shown above."

// RenderTable renders the window as a fixed-width table, one row per work order
func RenderTable(window []models.WorkOrder) string {
	rows := make([][3]string, 0, len(window)+1)
	rows = append(rows, [3]string{HeaderWONum, HeaderFailureCode, HeaderHours})
	for _, wo := range window {
		rows = append(rows, [3]string{
			escapeCell(wo.WONum),
			escapeCell(wo.FailureCategory()),
			ingest.FormatHours(wo.LaborHrs),
		})
	}

	var widths [3]int
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&sb, "%s | %s | %s\n",
			padRight(row[0], widths[0]), padRight(row[1], widths[1]), padLeft(row[2], widths[2]))
		if i == 0 {
			fmt.Fprintf(&sb, "%s-+-%s-+-%s\n",
				strings.Repeat("-", widths[0]), strings.Repeat("-", widths[1]), strings.Repeat("-", widths[2]))
		}
	}
	return sb.String()
}

// ParseTable recovers the wonum, failure code and labor hours of each row
// written by RenderTable. Other WorkOrder fields are left empty.
func ParseTable(text string) ([]models.WorkOrder, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("table must have a header and a separator row, got %d lines", len(lines))
	}

	header := splitCells(lines[0])
	if len(header) != 3 || header[0] != HeaderWONum || header[1] != HeaderFailureCode || header[2] != HeaderHours {
		return nil, fmt.Errorf("unexpected table header %q", lines[0])
	}
	if strings.Trim(lines[1], "-+ ") != "" {
		return nil, fmt.Errorf("unexpected separator row %q", lines[1])
	}

	out := make([]models.WorkOrder, 0, len(lines)-2)
	for i, line := range lines[2:] {
		cells := splitCells(line)
		if len(cells) != 3 {
			return nil, fmt.Errorf("table row %d: expected 3 cells, got %d", i+1, len(cells))
		}
		hours, err := strconv.ParseFloat(cells[2], 64)
		if err != nil {
			return nil, fmt.Errorf("table row %d: invalid hours %q: %w", i+1, cells[2], err)
		}
		code := cells[1]
		if code == models.NoFailureCode {
			code = ""
		}
		out = append(out, models.WorkOrder{WONum: cells[0], FailureCode: code, LaborHrs: hours})
	}
	return out, nil
}

// PromptContext is the immutable input of BuildPrompt
type PromptContext struct {
	asset      string
	windowSize int
	count      int
	table      string
	failures   []models.FailureCount
	averages   []models.AverageHours
}

// NewPromptContext snapshots the window and its statistics
func NewPromptContext(asset string, windowSize int, window []models.WorkOrder, stats models.WindowStats) PromptContext {
	failures := stats.Failures.Entries()
	return PromptContext{
		asset:      asset,
		windowSize: windowSize,
		count:      len(window),
		table:      RenderTable(window),
		failures:   failures,
		averages:   stats.AverageHours.EntriesIn(stats.Failures.Codes()),
	}
}

// Asset returns the asset identifier the prompt is about
func (p PromptContext) Asset() string { return p.asset }

// Table returns the rendered window table
func (p PromptContext) Table() string { return p.table }

// Failures returns the failure counts in display order
func (p PromptContext) Failures() []models.FailureCount {
	return append([]models.FailureCount(nil), p.failures...)
}

// AverageHours returns the per-code averages in display order
func (p PromptContext) AverageHours() []models.AverageHours {
	return append([]models.AverageHours(nil), p.averages...)
}

// BuildPrompt renders the instruction sent to the summary service
func BuildPrompt(p PromptContext) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a maintenance assistant. Summarize the last %d work orders for asset %s (window size %d).\n\n",
		p.count, p.asset, p.windowSize)

	sb.WriteString("Work Orders Table:\n")
	sb.WriteString(p.table)

	sb.WriteString("\nFailures:\n")
	if len(p.failures) == 0 {
		sb.WriteString("none recorded\n")
	}
	for _, f := range p.failures {
		fmt.Fprintf(&sb, "%s: %d\n", f.Code, f.Count)
	}

	sb.WriteString("\nAverage Time per Failure:\n")
	if len(p.averages) == 0 {
		sb.WriteString("none recorded\n")
	}
	for _, a := range p.averages {
		fmt.Fprintf(&sb, "%s: %.2f hours\n", a.Code, a.Hours)
	}

	sb.WriteString("\nSummarize any common failure codes, repeated issues, and general time taken.\n")
	sb.WriteString(GroundingInstruction)
	sb.WriteString("\n")
	return sb.String()
}

// cellEscaper keeps every cell on one physical line and free of bare pipes
var cellEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "\n", `\n`, "\r", `\r`)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// splitCells splits a row on unescaped pipes and trims the padding
func splitCells(line string) []string {
	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			switch r {
			case 'n':
				cur.WriteByte('\n')
			case 'r':
				cur.WriteByte('\r')
			default:
				cur.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
