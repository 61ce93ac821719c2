package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Config describes how to reach the database. URL wins over the individual
// fields when set.
type Config struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a postgres:// connection string.
func (c Config) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.Host == "" {
		return "", fmt.Errorf("database host is required")
	}
	if c.Name == "" {
		return "", fmt.Errorf("database name is required")
	}

	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	// url.UserPassword escapes credentials
	userInfo := ""
	if c.User != "" {
		userInfo = url.UserPassword(c.User, c.Password).String() + "@"
	}

	return fmt.Sprintf(
		"postgres://%s%s:%d/%s?sslmode=%s",
		userInfo,
		c.Host,
		port,
		url.PathEscape(c.Name),
		url.QueryEscape(sslmode),
	), nil
}

// Session is the single catalog connection used by one run.
type Session struct {
	Pool   *pgxpool.Pool
	DB     *sql.DB
	logger *slog.Logger
}

// Connect opens a small pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	poolCfg.MaxConns = 4
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 5 * time.Minute
	poolCfg.MaxConnIdleTime = 1 * time.Minute

	logger.Debug("connecting to database",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug("database connection established")

	return &Session{
		Pool:   pool,
		DB:     stdlib.OpenDBFromPool(pool),
		logger: logger,
	}, nil
}

// Close releases the session. It is safe to call on a nil session.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.logger != nil {
		s.logger.Debug("database connection closed")
	}
}
