package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/songzhibin97/pairscout/internal/data"
	"github.com/songzhibin97/pairscout/internal/models"
	"github.com/songzhibin97/pairscout/internal/pagination"
	"github.com/songzhibin97/pairscout/internal/session"
)

var (
	ErrExtractionFailed = errors.New("no listings could be extracted")
	ErrNoResults        = errors.New("no results, start research first")
)

// Pusher delivers a message to a user outside the request/response flow
type Pusher interface {
	Push(ctx context.Context, userID int64, text string) error
}

// Enricher produces the deep research text for a listing
type Enricher interface {
	Run(ctx context.Context, l models.Listing) string
}

// Service wires extraction, per-user sessions and enrichment together
type Service struct {
	source   data.ListingSource
	wallets  data.WalletStore
	repo     *session.Repository
	tracker  *session.Tracker
	enricher Enricher
	pusher   Pusher
	logger   *slog.Logger

	// 深度研究在后台执行, Close 时取消并等待
	bg        sync.WaitGroup
	stop      chan struct{}
	closeOnce sync.Once
}

func NewService(
	source data.ListingSource,
	wallets data.WalletStore,
	enricher Enricher,
	pusher Pusher,
	logger *slog.Logger,
) *Service {
	return &Service{
		source:   source,
		wallets:  wallets,
		repo:     session.NewRepository(),
		tracker:  session.NewTracker(wallets),
		enricher: enricher,
		pusher:   pusher,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// StartResearch extracts a fresh result set for the user and renders its first page.
// On an empty extraction the user's previous session is left untouched.
func (s *Service) StartResearch(ctx context.Context, userID int64) (pagination.DisplayPayload, error) {
	listings := s.source.Extract(ctx)
	if len(listings) == 0 {
		return pagination.DisplayPayload{}, ErrExtractionFailed
	}

	s.repo.Replace(userID, listings)
	s.logger.Info("research complete", "user_id", userID, "count", len(listings))

	return s.Navigate(ctx, userID, 0)
}

// ShowList renders the first page of the current result set
func (s *Service) ShowList(ctx context.Context, userID int64) (pagination.DisplayPayload, error) {
	return s.Navigate(ctx, userID, 0)
}

// Navigate moves the cursor to index, clamped, and renders it
func (s *Service) Navigate(_ context.Context, userID int64, index int) (pagination.DisplayPayload, error) {
	sess, ok := s.repo.SetCursor(userID, index)
	if !ok {
		return pagination.DisplayPayload{}, ErrNoResults
	}
	return pagination.Render(sess), nil
}

// Current returns the listing under the user's cursor
func (s *Service) Current(userID int64) (models.Listing, error) {
	sess, ok := s.repo.Get(userID)
	if !ok || len(sess.Results) == 0 {
		return models.Listing{}, ErrNoResults
	}
	return sess.Results[session.Clamp(sess.Cursor, len(sess.Results))], nil
}

// RequestEnrichment acknowledges immediately and pushes the research text later.
// The work outlives ctx and is only stopped by Close.
func (s *Service) RequestEnrichment(ctx context.Context, userID int64) error {
	listing, err := s.Current(userID)
	if err != nil {
		return err
	}

	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("deep research panicked", "user_id", userID, "panic", r)
			}
		}()

		go func() {
			select {
			case <-s.stop:
				cancel()
			case <-bgCtx.Done():
			}
		}()

		text := s.enricher.Run(bgCtx, listing)
		if bgCtx.Err() != nil {
			s.logger.Warn("deep research abandoned on shutdown", "user_id", userID)
			return
		}
		if err := s.pusher.Push(bgCtx, userID, text); err != nil {
			s.logger.Error("failed to push deep research", "user_id", userID, "err", err)
		}
	}()

	return nil
}

// Wait blocks until every background enrichment has been delivered
func (s *Service) Wait() {
	s.bg.Wait()
}

// Close cancels in-flight enrichments and waits for them to return
func (s *Service) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	s.bg.Wait()
}

// ConnectWallet starts wallet capture for the user
func (s *Service) ConnectWallet(userID int64) {
	s.tracker.AwaitWallet(userID)
}

// CancelInput abandons a pending wallet capture
func (s *Service) CancelInput(userID int64) {
	s.tracker.Cancel(userID)
}

func (s *Service) InputMode(userID int64) session.InputMode {
	return s.tracker.Mode(userID)
}

// SubmitWalletText feeds free text to the wallet capture flow
func (s *Service) SubmitWalletText(ctx context.Context, userID int64, text string) (session.Outcome, string, error) {
	outcome, addr, err := s.tracker.Submit(ctx, userID, text)
	if err != nil {
		s.logger.Error("failed to save wallet", "user_id", userID, "err", err)
		return outcome, "", err
	}
	if outcome == session.OutcomeSaved {
		s.logger.Info("wallet saved", "user_id", userID)
	}
	return outcome, addr, nil
}

// Wallets lists the user's saved addresses in insertion order
func (s *Service) Wallets(ctx context.Context, userID int64) ([]string, error) {
	wallets, err := s.wallets.QueryAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}
