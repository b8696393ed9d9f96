// ABOUTME: Neighbor is a nearest-neighbor hit returned by a vector index
// ABOUTME: Index refers back to the row position of the embedded work order
package models

// Neighbor represents one vector index query result
type Neighbor struct {
	Index    int     `json:"index" yaml:"index"`
	Distance float64 `json:"distance" yaml:"distance"`
}

// SimilarWorkOrder pairs a neighbor hit with the work order it points at
type SimilarWorkOrder struct {
	WorkOrder WorkOrder `json:"work_order" yaml:"work_order"`
	Distance  float64   `json:"distance" yaml:"distance"`
}
