// ABOUTME: SchemaError reports malformed input rows or missing columns
// ABOUTME: Any SchemaError aborts ingestion so no partial dataset is embedded
package ingest

import "fmt"

// SchemaError describes why the input table could not be loaded
type SchemaError struct {
	Column string // offending column, empty for row-shape errors
	Row    int    // 1-based data row number, 0 for header errors
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Row == 0 && e.Column != "":
		return fmt.Sprintf("schema error: missing required column %q", e.Column)
	case e.Column != "":
		return fmt.Sprintf("schema error: row %d column %q: %s (value %q)", e.Row, e.Column, e.Reason, e.Value)
	case e.Row > 0:
		return fmt.Sprintf("schema error: row %d: %s", e.Row, e.Reason)
	default:
		return "schema error: " + e.Reason
	}
}
