package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/songzhibin97/pairscout/internal/models"
)

const DefaultTimeout = 90 * time.Second

// Enricher runs one deep research request and always produces user-facing text
type Enricher struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

func NewEnricher(completer Completer, timeout time.Duration, logger *slog.Logger) *Enricher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Enricher{
		completer: completer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Run returns the research message for l, or an error message if the service failed
func (e *Enricher) Run(ctx context.Context, l models.Listing) string {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.completer.Complete(ctx, BuildPrompt(l))
	if err != nil {
		e.logger.Error("deep research failed", "name", l.DisplayName, "err", err)
		return fmt.Sprintf("❌ Error in deep research: %s", err)
	}

	e.logger.Info("deep research done", "name", l.DisplayName, "duration", time.Since(start).String())

	return Truncate(fmt.Sprintf("🔬 Deep Research Result for %s:\n\n%s", orNA(l.DisplayName), StripReasoning(raw)))
}
