package session

import (
	"sync"

	"github.com/songzhibin97/pairscout/internal/models"
)

// Session is one user's current result set and cursor
type Session struct {
	UserID  int64
	Results []models.Listing
	Cursor  int
}

// Repository 按用户保存最近一次抓取结果, 每次抓取整体替换
type Repository struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewRepository() *Repository {
	return &Repository{sessions: make(map[int64]Session)}
}

// Replace overwrites the user's results and resets the cursor to 0
func (r *Repository) Replace(userID int64, results []models.Listing) {
	copied := make([]models.Listing, len(results))
	copy(copied, results)

	r.mu.Lock()
	r.sessions[userID] = Session{UserID: userID, Results: copied, Cursor: 0}
	r.mu.Unlock()
}

// Get returns a snapshot of the user's session
func (r *Repository) Get(userID int64) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	return s.snapshot(), true
}

// SetCursor moves the cursor, clamped into the result range. It reports false
// when the user has no results.
func (r *Repository) SetCursor(userID int64, index int) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok || len(s.Results) == 0 {
		return Session{}, false
	}
	s.Cursor = Clamp(index, len(s.Results))
	r.sessions[userID] = s
	return s.snapshot(), true
}

// Clamp bounds index into [0, total-1]. total must be positive.
func Clamp(index, total int) int {
	if index < 0 {
		return 0
	}
	if index > total-1 {
		return total - 1
	}
	return index
}

func (s Session) snapshot() Session {
	results := make([]models.Listing, len(s.Results))
	copy(results, s.Results)
	s.Results = results
	return s
}
