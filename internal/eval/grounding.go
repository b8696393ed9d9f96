// ABOUTME: Faithfulness check for generated summaries against the window statistics
// ABOUTME: Deterministic keyword evaluation, reports expected and out-of-window failure codes
package eval

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/harper/wosum/internal/models"
)

// Report is the outcome of a faithfulness check
type Report struct {
	Score      float64  `json:"score" yaml:"score"`
	Missing    []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Unexpected []string `json:"unexpected,omitempty" yaml:"unexpected,omitempty"`
	Detail     string   `json:"detail" yaml:"detail"`
}

// Faithfulness scores text (0.0-1.0) by whether every expected item appears
// and no forbidden item does. Items match as whole words, case-insensitive.
func Faithfulness(text string, expected, forbidden []string) Report {
	var missing, found []string
	for _, item := range expected {
		if !mentions(text, item) {
			missing = append(missing, item)
		}
	}
	for _, item := range forbidden {
		if mentions(text, item) {
			found = append(found, item)
		}
	}

	report := Report{Missing: missing, Unexpected: found}
	switch {
	case len(missing) == 0 && len(found) == 0:
		report.Score = 1.0
		report.Detail = "Faithfulness verified"
	case len(missing) > 0 && len(found) > 0:
		report.Score = 0.0
		report.Detail = fmt.Sprintf("Faithfulness failure - missing expected items: %v, out-of-window items found: %v", missing, found)
	case len(missing) > 0:
		report.Score = 0.5
		report.Detail = fmt.Sprintf("Partial faithfulness - missing expected items: %v", missing)
	default:
		report.Score = 0.5
		report.Detail = fmt.Sprintf("Partial faithfulness - out-of-window items found: %v", found)
	}
	return report
}

// CheckSummary expects the most frequent failure codes of the window in the
// summary and flags codes from the wider dataset that the window never saw.
func CheckSummary(summary string, stats models.WindowStats, datasetCodes []string) Report {
	var expected []string
	entries := stats.Failures.Entries()
	for _, e := range entries {
		if e.Count != entries[0].Count {
			break
		}
		if e.Code != models.NoFailureCode {
			expected = append(expected, e.Code)
		}
	}

	seen := make(map[string]struct{})
	var forbidden []string
	for _, code := range datasetCodes {
		if code == "" || code == models.NoFailureCode {
			continue
		}
		if _, inWindow := stats.Failures[code]; inWindow {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		forbidden = append(forbidden, code)
	}
	sort.Strings(forbidden)

	return Faithfulness(summary, expected, forbidden)
}

func mentions(text, item string) bool {
	if item == "" {
		return false
	}
	re := regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(item) + `($|[^\p{L}\p{N}])`)
	return re.MatchString(text)
}
