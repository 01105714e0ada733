package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/songzhibin97/pairscout/internal/models"
)

// MultiSourceCollector implements data.ListingSource by trying several page sources in order
type MultiSourceCollector struct {
	sources []Source
	logger  Logger
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type Source interface {
	Name() string
	Extract(ctx context.Context) ([]models.Listing, error)
}

func NewMultiSourceCollector(sources []Source, logger Logger) *MultiSourceCollector {
	return &MultiSourceCollector{
		sources: sources,
		logger:  logger,
	}
}

// Extract implements data.ListingSource. The first source returning a non-empty
// result wins; failures are logged and swallowed.
func (c *MultiSourceCollector) Extract(ctx context.Context) []models.Listing {
	runID := uuid.NewString()

	for _, source := range c.sources {
		if ctx.Err() != nil {
			c.logger.Warn("extraction cancelled", "run_id", runID, "err", ctx.Err())
			return nil
		}

		start := time.Now()
		result, err := c.extractSafe(ctx, source)
		if err == nil && len(result) > 0 {
			c.logger.Info("collected listings", "run_id", runID, "source", source.Name(),
				"count", len(result), "duration", time.Since(start).String())
			return result
		}
		if err == nil {
			err = fmt.Errorf("no listings found")
		}
		c.logger.Error("failed to collect listings", "run_id", runID, "source", source.Name(), "err", err)
	}

	return []models.Listing{}
}

func (c *MultiSourceCollector) extractSafe(ctx context.Context, source Source) (result []models.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()
	return source.Extract(ctx)
}
