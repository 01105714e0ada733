package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/songzhibin97/pairscout/internal/data"
	"github.com/songzhibin97/pairscout/internal/models"
)

type InputMode int

const (
	Idle InputMode = iota
	AwaitingWalletAddress
)

func (m InputMode) String() string {
	switch m {
	case AwaitingWalletAddress:
		return "awaiting_wallet_address"
	default:
		return "idle"
	}
}

// Outcome of feeding free text to the tracker
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeRetry
	OutcomeSaved
)

// Tracker holds the pending-input mode per user and captures wallet addresses
type Tracker struct {
	mu    sync.Mutex
	modes map[int64]InputMode
	store data.WalletStore
}

func NewTracker(store data.WalletStore) *Tracker {
	return &Tracker{
		modes: make(map[int64]InputMode),
		store: store,
	}
}

func (t *Tracker) Mode(userID int64) InputMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modes[userID]
}

// AwaitWallet switches the user into wallet capture
func (t *Tracker) AwaitWallet(userID int64) {
	t.mu.Lock()
	t.modes[userID] = AwaitingWalletAddress
	t.mu.Unlock()
}

// Cancel abandons any pending input
func (t *Tracker) Cancel(userID int64) {
	t.mu.Lock()
	delete(t.modes, userID)
	t.mu.Unlock()
}

// Submit handles free text from the user. In Idle mode the text is ignored and
// the store is not touched. A failed insert keeps the user awaiting.
func (t *Tracker) Submit(ctx context.Context, userID int64, text string) (Outcome, string, error) {
	if t.Mode(userID) != AwaitingWalletAddress {
		return OutcomeIgnored, "", nil
	}

	addr, ok := models.ExtractWallet(text)
	if !ok {
		return OutcomeRetry, "", nil
	}

	if err := t.store.Insert(ctx, userID, addr); err != nil {
		return OutcomeRetry, "", fmt.Errorf("failed to save wallet: %w", err)
	}

	t.Cancel(userID)
	return OutcomeSaved, addr, nil
}
