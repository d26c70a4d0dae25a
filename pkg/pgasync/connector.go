package pgasync

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector abstracts connection pool establishment.
// Implementations handle authentication (standard, AWS IAM, Google IAM,
// Azure Entra ID) and return a ready pool that can be adapted to a
// ConnectionPool and wrapped with New.
type Connector interface {
	// Connect establishes a connection pool using the connector's
	// authentication mechanism.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
