// ABOUTME: VectorIndex capability and an exact flat L2 implementation
// ABOUTME: Built once per run from row-aligned embeddings; queried for similar work orders
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/harper/wosum/internal/models"
)

// ErrEmptyIndex is returned when querying an index that holds no vectors
var ErrEmptyIndex = errors.New("vector index is empty")

// VectorIndex stores row-aligned vectors and answers nearest-neighbor queries
type VectorIndex interface {
	Build(vectors [][]float64) error
	Len() int
	Dim() int
	Query(vector []float64, k int) ([]models.Neighbor, error)
}

// FlatL2 is a brute-force index ranked by Euclidean distance
type FlatL2 struct {
	vectors [][]float64
	dim     int
}

// NewFlatL2 creates an empty index
func NewFlatL2() *FlatL2 {
	return &FlatL2{}
}

// Build replaces the index contents with vectors, kept in row order.
// All vectors must share one dimension.
func (f *FlatL2) Build(vectors [][]float64) error {
	if len(vectors) == 0 {
		f.vectors = nil
		f.dim = 0
		return nil
	}

	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("vector 0 is empty")
	}
	stored := make([][]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		stored[i] = append([]float64(nil), v...)
	}

	f.vectors = stored
	f.dim = dim
	return nil
}

// Len returns the number of indexed vectors
func (f *FlatL2) Len() int { return len(f.vectors) }

// Dim returns the vector dimension, 0 when empty
func (f *FlatL2) Dim() int { return f.dim }

// Query returns the k nearest vectors to vector, closest first.
// Ties go to the lower row index; k is clamped to Len.
func (f *FlatL2) Query(vector []float64, k int) ([]models.Neighbor, error) {
	if len(f.vectors) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(vector) != f.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(vector), f.dim)
	}
	if k <= 0 {
		return []models.Neighbor{}, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	results := make([]models.Neighbor, len(f.vectors))
	for i, v := range f.vectors {
		results[i] = models.Neighbor{Index: i, Distance: squaredL2(vector, v)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Index < results[j].Index
	})

	results = results[:k]
	for i := range results {
		results[i].Distance = math.Sqrt(results[i].Distance)
	}
	return results, nil
}

// squaredL2 calculates the squared Euclidean distance between two vectors
func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
