package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/pairscout/internal/data/storage"
	"github.com/songzhibin97/pairscout/internal/models"
	"github.com/songzhibin97/pairscout/internal/pagination"
	"github.com/songzhibin97/pairscout/internal/session"
)

type staticSource struct {
	listings []models.Listing
	calls    int
}

func (s *staticSource) Extract(context.Context) []models.Listing {
	s.calls++
	return s.listings
}

type recordingPusher struct {
	mu    sync.Mutex
	users []int64
	texts []string
	err   error
}

func (p *recordingPusher) Push(_ context.Context, userID int64, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, userID)
	p.texts = append(p.texts, text)
	return p.err
}

type enricherFunc func(ctx context.Context, l models.Listing) string

func (f enricherFunc) Run(ctx context.Context, l models.Listing) string { return f(ctx, l) }

func newTestService(source *staticSource, enricher Enricher, pusher Pusher) *Service {
	return NewService(source, storage.NewMemoryStorage(), enricher, pusher,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func threeListings() []models.Listing {
	return []models.Listing{
		{DisplayName: "One", ContractAddress: "A"},
		{DisplayName: "Two", ContractAddress: "B"},
		{DisplayName: "Three", ContractAddress: "C"},
	}
}

func TestService_Navigation(t *testing.T) {
	svc := newTestService(&staticSource{listings: threeListings()}, nil, &recordingPusher{})
	ctx := context.Background()

	p, err := svc.StartResearch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1/3", p.Label)

	p, err = svc.Navigate(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "1/3", p.Label)
	assert.True(t, p.Has(pagination.ActionNext))
	assert.False(t, p.Has(pagination.ActionPrevious))

	p, err = svc.Navigate(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "3/3", p.Label)
	assert.True(t, p.Has(pagination.ActionPrevious))
	assert.False(t, p.Has(pagination.ActionNext))

	p, err = svc.Navigate(ctx, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, "3/3", p.Label)
	assert.Equal(t, "Three", p.Listing.DisplayName)

	again, err := svc.Navigate(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, p, again)

	p, err = svc.ShowList(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1/3", p.Label)
}

func TestService_WalletFlow(t *testing.T) {
	svc := newTestService(&staticSource{}, nil, &recordingPusher{})
	ctx := context.Background()

	svc.ConnectWallet(1)
	assert.Equal(t, session.AwaitingWalletAddress, svc.InputMode(1))

	outcome, addr, err := svc.SubmitWalletText(ctx, 1, "hello 0xABCDEF0123456789ABCDEF0123456789ABCDEF01 thanks")
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeSaved, outcome)
	assert.Equal(t, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", addr)
	assert.Equal(t, session.Idle, svc.InputMode(1))

	wallets, err := svc.Wallets(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xABCDEF0123456789ABCDEF0123456789ABCDEF01"}, wallets)

	outcome, _, err = svc.SubmitWalletText(ctx, 1, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeIgnored, outcome)

	wallets, err = svc.Wallets(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
}

func TestService_ExtractionFailureKeepsSession(t *testing.T) {
	source := &staticSource{listings: threeListings()}
	svc := newTestService(source, nil, &recordingPusher{})
	ctx := context.Background()

	_, err := svc.StartResearch(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Navigate(ctx, 1, 2)
	require.NoError(t, err)

	source.listings = nil
	_, err = svc.StartResearch(ctx, 1)
	assert.ErrorIs(t, err, ErrExtractionFailed)

	current, err := svc.Current(1)
	require.NoError(t, err)
	assert.Equal(t, "Three", current.DisplayName)
}

func TestService_NoResults(t *testing.T) {
	svc := newTestService(&staticSource{}, nil, &recordingPusher{})
	ctx := context.Background()

	_, err := svc.Navigate(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = svc.ShowList(ctx, 1)
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = svc.Current(1)
	assert.ErrorIs(t, err, ErrNoResults)

	assert.ErrorIs(t, svc.RequestEnrichment(ctx, 1), ErrNoResults)
}

func TestService_RequestEnrichment(t *testing.T) {
	release := make(chan struct{})
	pusher := &recordingPusher{}
	svc := newTestService(&staticSource{listings: threeListings()}, enricherFunc(func(ctx context.Context, l models.Listing) string {
		<-release
		return "research on " + l.DisplayName
	}), pusher)
	ctx := context.Background()

	_, err := svc.StartResearch(ctx, 7)
	require.NoError(t, err)
	_, err = svc.Navigate(ctx, 7, 1)
	require.NoError(t, err)

	// returns before the enrichment finishes
	require.NoError(t, svc.RequestEnrichment(ctx, 7))
	close(release)
	svc.Wait()

	assert.Equal(t, []int64{7}, pusher.users)
	assert.Equal(t, []string{"research on Two"}, pusher.texts)
}

func TestService_RequestEnrichmentPushFailure(t *testing.T) {
	pusher := &recordingPusher{err: errors.New("bot blocked")}
	svc := newTestService(&staticSource{listings: threeListings()}, enricherFunc(func(ctx context.Context, l models.Listing) string {
		return "x"
	}), pusher)
	ctx := context.Background()

	_, err := svc.StartResearch(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.RequestEnrichment(ctx, 1))
	svc.Wait()

	assert.Len(t, pusher.texts, 1)
}

func TestService_RequestEnrichmentOutlivesRequest(t *testing.T) {
	pusher := &recordingPusher{}
	svc := newTestService(&staticSource{listings: threeListings()}, enricherFunc(func(ctx context.Context, l models.Listing) string {
		if ctx.Err() != nil {
			return "cancelled"
		}
		return "research on " + l.DisplayName
	}), pusher)

	_, err := svc.StartResearch(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.RequestEnrichment(ctx, 1))
	cancel()
	svc.Wait()

	assert.Equal(t, []string{"research on One"}, pusher.texts)
}

func TestService_CloseCancelsEnrichment(t *testing.T) {
	started := make(chan struct{})
	pusher := &recordingPusher{}
	svc := newTestService(&staticSource{listings: threeListings()}, enricherFunc(func(ctx context.Context, l models.Listing) string {
		close(started)
		<-ctx.Done()
		return "cancelled"
	}), pusher)
	ctx := context.Background()

	_, err := svc.StartResearch(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.RequestEnrichment(ctx, 1))
	<-started

	svc.Close()
	svc.Close()

	assert.Empty(t, pusher.texts)
}
