// ABOUTME: TextEmbedder capability and batch shape validation
// ABOUTME: Guarantees N texts map to N equal-dimension vectors in input order
package embedding

import (
	"context"
	"fmt"
)

// TextEmbedder maps an ordered batch of texts to vectors.
// Output index i must correspond to input index i.
type TextEmbedder interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ShapeError reports a provider that broke the one-vector-per-text contract
type ShapeError struct {
	Provider string
	Want     int // number of input texts
	Got      int // number of vectors returned
	Index    int // first vector with a bad dimension, -1 when the count is wrong
	Dim      int // dimension of the vector at Index
	WantDim  int // dimension established by the first vector
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("embedding shape error: %s returned %d vectors for %d texts", e.Provider, e.Got, e.Want)
	}
	return fmt.Sprintf("embedding shape error: %s vector %d has dimension %d, want %d", e.Provider, e.Index, e.Dim, e.WantDim)
}

// CheckShape validates that vectors has one entry per text and a uniform, non-zero dimension.
// It returns the dimension.
func CheckShape(provider string, texts int, vectors [][]float64) (int, error) {
	if len(vectors) != texts {
		return 0, &ShapeError{Provider: provider, Want: texts, Got: len(vectors), Index: -1}
	}
	if texts == 0 {
		return 0, nil
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim || len(v) == 0 {
			return 0, &ShapeError{Provider: provider, Want: texts, Got: len(vectors), Index: i, Dim: len(v), WantDim: dim}
		}
	}
	return dim, nil
}

// EmbedAll embeds texts with e and validates the result shape.
// A contract violation aborts rather than truncating.
func EmbedAll(ctx context.Context, e TextEmbedder, texts []string) ([][]float64, int, error) {
	if len(texts) == 0 {
		return nil, 0, nil
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s embedding failed: %w", e.Name(), err)
	}

	dim, err := CheckShape(e.Name(), len(texts), vectors)
	if err != nil {
		return nil, 0, err
	}
	return vectors, dim, nil
}
