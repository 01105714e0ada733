package telegram

import (
	"context"
	"log/slog"
	"time"
)

type updatesFetcher interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error)
}

// Poller long-polls getUpdates and feeds the queue
type Poller struct {
	fetcher updatesFetcher
	queue   *Queue
	timeout int
	logger  *slog.Logger
	offset  int64
}

func NewPoller(fetcher updatesFetcher, queue *Queue, timeout int, logger *slog.Logger) *Poller {
	return &Poller{
		fetcher: fetcher,
		queue:   queue,
		timeout: timeout,
		logger:  logger,
	}
}

// Run polls until ctx is cancelled
func (p *Poller) Run(ctx context.Context) error {
	backoff := time.Second

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := p.fetcher.GetUpdates(ctx, p.offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("failed to get updates", "offset", p.offset, "err", err, "retry_in", backoff.String())

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, u := range updates {
			if u.UpdateID >= p.offset {
				p.offset = u.UpdateID + 1
			}
			userID := u.UserID()
			if userID == 0 {
				continue
			}
			p.queue.Dispatch(ctx, userID, u)
		}
	}
}
