package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/songzhibin97/pairscout/internal/configs"
	"github.com/songzhibin97/pairscout/internal/data"
	"github.com/songzhibin97/pairscout/internal/models"
)

var ErrInvalidInput = errors.New("invalid input")

// Open builds the wallet store selected by cfg.Driver
func Open(ctx context.Context, cfg configs.WalletConfig) (data.WalletStore, error) {
	switch cfg.Driver {
	case "sqlite", "postgres":
		return NewSQLStorage(ctx, cfg.Driver, cfg.DSN)
	case "redis":
		return NewRedisStorage(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported wallet driver %q", cfg.Driver)
	}
}

var schemas = map[string]string{
	"sqlite": `
        CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            userid INTEGER NOT NULL,
            userwallet TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_users_userid ON users(userid);
    `,
	"postgres": `
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            userid BIGINT NOT NULL,
            userwallet TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_users_userid ON users(userid);
    `,
}

// 插入顺序列, sqlite 使用 rowid 以兼容只有 userid/userwallet 两列的旧库
var orderColumns = map[string]string{
	"sqlite":   "rowid",
	"postgres": "id",
}

// SQLStorage keeps wallets in a users(userid, userwallet) table
type SQLStorage struct {
	db      *sqlx.DB
	orderBy string
}

func NewSQLStorage(ctx context.Context, driver, dsn string) (*SQLStorage, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// sqlite 只允许单写连接, :memory: 库也依赖同一连接
		db.SetMaxOpenConns(1)
	}

	s := &SQLStorage{db: db, orderBy: orderColumns[driver]}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// Insert implements data.WalletStore
func (s *SQLStorage) Insert(ctx context.Context, userID int64, address string) error {
	if address == "" {
		return ErrInvalidInput
	}

	query := s.db.Rebind(`INSERT INTO users (userid, userwallet) VALUES (?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, userID, address); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

// QueryAll implements data.WalletStore
func (s *SQLStorage) QueryAll(ctx context.Context, userID int64) ([]string, error) {
	query := s.db.Rebind(`SELECT userid, userwallet FROM users WHERE userid = ? ORDER BY ` + s.orderBy + ` ASC`)

	var records []models.WalletRecord
	if err := s.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}

	wallets := make([]string, 0, len(records))
	for _, r := range records {
		wallets = append(wallets, r.Address)
	}
	return wallets, nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
