package data

import (
	"context"

	"github.com/songzhibin97/pairscout/internal/models"
)

// ListingSource 负责抓取新交易对列表
type ListingSource interface {
	// Extract returns the listings in page order. It never fails; a broken
	// run yields an empty or partial slice.
	Extract(ctx context.Context) []models.Listing
}

// WalletStore 处理钱包地址的持久化
type WalletStore interface {
	// Insert appends a wallet address for the user
	Insert(ctx context.Context, userID int64, address string) error

	// QueryAll returns the user's addresses in insertion order
	QueryAll(ctx context.Context, userID int64) ([]string, error)

	Close() error
}
