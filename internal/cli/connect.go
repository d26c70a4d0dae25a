package cli

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/r-ashe/pgasync/internal/db"
)

// connectPool resolves the connection config and builds the pool through
// the connector matching the selected auth method. The returned cleanup
// releases connector-held resources (the Cloud SQL dialer) and must run
// after the pool is closed.
func connectPool(ctx context.Context, flags *connectionFlags, verbose bool) (*pgxpool.Pool, func(), error) {
	cfg, err := resolveConnection(flags, verbose)
	if err != nil {
		return nil, nil, err
	}

	connector, err := db.NewConnector(cfg)
	if err != nil {
		return nil, nil, err
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closer, ok := connector.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return pool, cleanup, nil
}
