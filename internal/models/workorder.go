// ABOUTME: WorkOrder represents one maintenance task record tied to an asset
// ABOUTME: Carries the typed fields used for statistics plus the derived embedding text
package models

// WorkOrder is a single maintenance record loaded from the input table
type WorkOrder struct {
	WONum           string  `json:"wonum" yaml:"wonum"`
	AssetNum        string  `json:"assetnum" yaml:"assetnum"`
	Description     string  `json:"description" yaml:"description"`
	LongDescription string  `json:"longdescription" yaml:"longdescription"`
	FailureCode     string  `json:"failurecode" yaml:"failurecode"`
	LaborHrs        float64 `json:"laborhrs" yaml:"laborhrs"`

	// Text is the canonical single-line rendering used as embedding input.
	// Set once at load time.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// FailureCategory returns the failure code used for grouping.
// An empty code is its own explicit category.
func (w WorkOrder) FailureCategory() string {
	if w.FailureCode == "" {
		return NoFailureCode
	}
	return w.FailureCode
}
