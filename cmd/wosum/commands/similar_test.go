// ABOUTME: Tests for the similar command
// ABOUTME: Verifies query modes, argument validation and JSON output
package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/wosum/internal/models"
)

func TestNewSimilarCmd(t *testing.T) {
	cmd := NewSimilarCmd()

	if !strings.HasPrefix(cmd.Use, "similar") {
		t.Errorf("Use = %q", cmd.Use)
	}
	flag := cmd.Flags().Lookup("limit")
	if flag == nil || flag.DefValue != "5" || flag.Shorthand != "k" {
		t.Errorf("unexpected --limit flag: %+v", flag)
	}
}

func TestSimilar_ByWONum(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCLI(t, "--format", "json", "similar", "--wonum", "1", "--limit", "2")
	if err != nil {
		t.Fatalf("similar failed: %v", err)
	}

	var results []models.SimilarWorkOrder
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.WorkOrder.WONum == "1" {
			t.Error("query work order should be excluded")
		}
	}
}

func TestSimilar_ByText(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCLI(t, "similar", "Seal", "leak")
	if err != nil {
		t.Fatalf("similar failed: %v", err)
	}
	if !strings.Contains(out, "WO NUMBER") || !strings.Contains(out, "Total: 5 result(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSimilar_ArgumentErrors(t *testing.T) {
	setupCommandEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no query", []string{"similar"}},
		{"both query and wonum", []string{"similar", "leak", "--wonum", "1"}},
		{"zero limit", []string{"similar", "leak", "--limit", "0"}},
		{"unknown wonum", []string{"similar", "--wonum", "999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
