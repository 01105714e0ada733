package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const walletKeyPrefix = "pairscout:wallets:"

// RedisStorage keeps each user's wallets in a list, appended with RPUSH
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(ctx context.Context, addr, password string, db int) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func walletKey(userID int64) string {
	return walletKeyPrefix + strconv.FormatInt(userID, 10)
}

// Insert implements data.WalletStore
func (s *RedisStorage) Insert(ctx context.Context, userID int64, address string) error {
	if address == "" {
		return ErrInvalidInput
	}
	if err := s.client.RPush(ctx, walletKey(userID), address).Err(); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

// QueryAll implements data.WalletStore
func (s *RedisStorage) QueryAll(ctx context.Context, userID int64) ([]string, error) {
	wallets, err := s.client.LRange(ctx, walletKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	return wallets, nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
