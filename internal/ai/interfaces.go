package ai

import (
	"context"
)

// Completer sends a single prompt to a text-completion service
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
