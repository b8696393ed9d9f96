// ABOUTME: SummaryService capability shared by the generative-language backends
// ABOUTME: Defines the no-summary sentinel and the non-success status error
package llm

import (
	"context"
	"fmt"
)

// NoSummary is returned when the service answers successfully but without any text
const NoSummary = "[No summary returned]"

// SummaryService turns a fully rendered prompt into generated text
type SummaryService interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ServiceError reports a non-success HTTP response from a summary service
type ServiceError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s summary request failed: status %d: %s", e.Provider, e.StatusCode, e.Body)
}
