package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/r-ashe/pgasync/internal/retry"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns matches the dispatcher's default blocking slots so a
	// dispatched closure rarely queues inside the pool after it already
	// holds a slot.
	DefaultMaxConns = pgasync.DefaultMaxWorkers

	// DefaultMinConns keeps at least one connection warm.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps idle connections alive between bursts
	// of dispatched work.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, maxConns int32) {
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// newConnectRetryExecutor builds the retry executor shared by connectors.
// Retry applies to pool construction only; dispatched work never retries.
func newConnectRetryExecutor() *retry.Executor {
	classifier := retry.NewPostgreSQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(pgasync.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(pgasync.DefaultRetryInitialDelay),
		retry.WithMaxDelay(pgasync.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(classifier, strategy)
}

// StandardConnector implements the Connector interface for standard
// username/password authentication with automatic retry on transient
// connect failures.
type StandardConnector struct {
	config        *pgasync.ConnectionConfig
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *pgasync.ConnectionConfig) *StandardConnector {
	return &StandardConnector{
		config:        config,
		retryExecutor: newConnectRetryExecutor(),
	}
}

// Connect establishes a connection pool using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", err)
		}

		configurePool(poolConfig, c.config.MaxConns)

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

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *pgasync.ConnectionConfig) (pgasync.Connector, error) {
	switch config.AuthMethod {
	case pgasync.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case pgasync.AuthMethodAWSIAM:
		provider, err := NewAWSIAMTokenProvider(
			fmt.Sprintf("%s:%d", config.Host, config.Port),
			config.AWSRegion,
			config.Username,
		)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(config, provider), nil
	case pgasync.AuthMethodAzureEntraID:
		provider, err := newAzureTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(config, provider), nil
	case pgasync.AuthMethodGoogleIAM:
		return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, pgasync.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable
// guidance. The chain carries pgasync.ErrConnectionFailed so exit-code
// classification works through errors.Is rather than message matching.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)
	cause := fmt.Errorf("%w: %w", pgasync.ErrConnectionFailed, err)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, host, port, cause)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, host, cause)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username or missing database grant

Original error: %w`, database, cause)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, cause)

	default:
		return fmt.Errorf("failed to connect to %s: %w", addr, cause)
	}
}
