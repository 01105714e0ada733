package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Queue runs one worker per active user so a user's updates are handled in
// order while different users proceed concurrently. Idle workers exit.
type Queue struct {
	mu      sync.Mutex
	workers map[int64]chan Update
	wg      sync.WaitGroup

	size   int
	idle   time.Duration
	handle func(ctx context.Context, u Update)
	logger *slog.Logger
}

func NewQueue(size int, idle time.Duration, handle func(ctx context.Context, u Update), logger *slog.Logger) *Queue {
	if size <= 0 {
		size = 32
	}
	if idle <= 0 {
		idle = time.Minute
	}
	return &Queue{
		workers: make(map[int64]chan Update),
		size:    size,
		idle:    idle,
		handle:  handle,
		logger:  logger,
	}
}

// Dispatch enqueues u for userID. It reports false when the user's queue is full.
func (q *Queue) Dispatch(ctx context.Context, userID int64, u Update) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch, ok := q.workers[userID]
	if !ok {
		ch = make(chan Update, q.size)
		q.workers[userID] = ch
		q.wg.Add(1)
		go q.work(ctx, userID, ch)
	}

	select {
	case ch <- u:
		return true
	default:
		q.logger.Warn("user queue full, dropping update", "user_id", userID, "update_id", u.UpdateID)
		return false
	}
}

// Wait blocks until every worker has exited
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) work(ctx context.Context, userID int64, ch chan Update) {
	defer q.wg.Done()

	timer := time.NewTimer(q.idle)
	defer timer.Stop()

	for {
		select {
		case u := <-ch:
			q.run(ctx, userID, u)
			timer.Reset(q.idle)
		case <-timer.C:
			q.mu.Lock()
			if len(ch) == 0 {
				delete(q.workers, userID)
				q.mu.Unlock()
				return
			}
			q.mu.Unlock()
			timer.Reset(q.idle)
		case <-ctx.Done():
			q.mu.Lock()
			delete(q.workers, userID)
			q.mu.Unlock()
			return
		}
	}
}

func (q *Queue) run(ctx context.Context, userID int64, u Update) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("update handler panicked", "user_id", userID, "update_id", u.UpdateID, "panic", r)
		}
	}()
	q.handle(ctx, u)
}
