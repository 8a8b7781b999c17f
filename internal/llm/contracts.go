package llm

import (
	"context"
	"fmt"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
)

// Page-count bounds enforced before any model call. One request carries
// every page in a single batch so the model can reason across pages.
const (
	MinPages = 1
	MaxPages = 10
)

// ExtractRequest carries everything needed for one extraction call.
type ExtractRequest struct {
	// Images are data URLs (base64 JPEG/PNG), one per page, in page order.
	Images []string
	// CustomPrompt overrides the default instruction set when non-empty.
	CustomPrompt string
	// EnabledFields is the field-enablement mask; nil means all enabled.
	EnabledFields *event.EnabledFields
}

// EventExtractor is the interface the pipeline depends on.
type EventExtractor interface {
	ExtractEvents(ctx context.Context, req ExtractRequest) ([]event.Event, []byte /*rawJSON*/, error)
}

// ValidatePageCount enforces the [MinPages, MaxPages] bound.
func ValidatePageCount(n int) error {
	if n < MinPages {
		return common.ErrNoImages
	}
	if n > MaxPages {
		return fmt.Errorf("%d pages exceeds the limit of %d: %w", n, MaxPages, common.ErrTooManyPages)
	}
	return nil
}
