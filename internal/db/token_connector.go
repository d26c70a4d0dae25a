package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/r-ashe/pgasync/internal/retry"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// TokenProvider abstracts short-lived token acquisition for database
// authentication (AWS IAM, Azure Entra ID). The token is used as the
// PostgreSQL password. The interface keeps connectors testable with mock
// providers.
type TokenProvider interface {
	// Token acquires an authentication token and its expiry time.
	Token(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must NOT include secrets.
	String() string
}

// TokenConnector implements the Connector interface for providers that
// authenticate via short-lived tokens. A BeforeConnect hook refreshes the
// token whenever the pool opens a new physical connection, so connections
// created after the initial token expires still authenticate.
type TokenConnector struct {
	config        *pgasync.ConnectionConfig
	provider      TokenProvider
	retryExecutor *retry.Executor
}

// NewTokenConnector creates a connector that uses a TokenProvider for
// authentication.
func NewTokenConnector(config *pgasync.ConnectionConfig, provider TokenProvider) *TokenConnector {
	return &TokenConnector{
		config:        config,
		provider:      provider,
		retryExecutor: newConnectRetryExecutor(),
	}
}

// Connect establishes a connection pool authenticated by provider tokens.
func (c *TokenConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	// Password omitted; the BeforeConnect hook supplies it per connection.
	cfg := *c.config
	cfg.Password = ""
	connStr := BuildConnectionString(&cfg)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig, c.config.MaxConns)
	poolConfig.BeforeConnect = c.refreshToken

	var pool *pgxpool.Pool
	err = c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return pool, nil
}

// refreshToken is the pgxpool BeforeConnect hook: it acquires a fresh token
// from the provider and installs it as the connection password.
func (c *TokenConnector) refreshToken(ctx context.Context, connConfig *pgx.ConnConfig) error {
	token, _, err := c.provider.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire token from %s: %w", c.provider, err)
	}
	connConfig.Password = token
	return nil
}
