package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	inserted []string
	err      error
}

func (s *recordingStore) Insert(_ context.Context, _ int64, address string) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, address)
	return nil
}

func (s *recordingStore) QueryAll(context.Context, int64) ([]string, error) {
	return s.inserted, nil
}

func (s *recordingStore) Close() error { return nil }

func TestTracker_WalletCapture(t *testing.T) {
	store := &recordingStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	tr.AwaitWallet(1)
	assert.Equal(t, AwaitingWalletAddress, tr.Mode(1))

	outcome, addr, err := tr.Submit(ctx, 1, "hello 0xABCDEF0123456789ABCDEF0123456789ABCDEF01 thanks")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.Equal(t, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", addr)
	assert.Equal(t, Idle, tr.Mode(1))
	assert.Equal(t, []string{addr}, store.inserted)
}

func TestTracker_RetryOnInvalid(t *testing.T) {
	store := &recordingStore{}
	tr := NewTracker(store)

	tr.AwaitWallet(1)
	outcome, _, err := tr.Submit(context.Background(), 1, "0x1234 is my wallet")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRetry, outcome)
	assert.Equal(t, AwaitingWalletAddress, tr.Mode(1))
	assert.Empty(t, store.inserted)
}

func TestTracker_IdleIgnored(t *testing.T) {
	store := &recordingStore{}
	tr := NewTracker(store)

	outcome, _, err := tr.Submit(context.Background(), 1, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Empty(t, store.inserted)
}

func TestTracker_StoreFailureKeepsAwaiting(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	tr := NewTracker(store)

	tr.AwaitWallet(1)
	outcome, _, err := tr.Submit(context.Background(), 1, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01")
	assert.Error(t, err)
	assert.Equal(t, OutcomeRetry, outcome)
	assert.Equal(t, AwaitingWalletAddress, tr.Mode(1))
}

func TestTracker_Cancel(t *testing.T) {
	tr := NewTracker(&recordingStore{})
	tr.AwaitWallet(1)
	tr.AwaitWallet(2)
	tr.Cancel(1)

	assert.Equal(t, Idle, tr.Mode(1))
	assert.Equal(t, AwaitingWalletAddress, tr.Mode(2))
	assert.Equal(t, "awaiting_wallet_address", tr.Mode(2).String())
}
