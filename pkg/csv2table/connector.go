package csv2table

import (
	"context"
	"database/sql"
)

// Connector is a unified interface for establishing database connections.
// Implementations handle the supported dialects and authentication methods
// (standard credentials, cloud IAM tokens).
type Connector interface {
	// Connect opens and pings a connection pool.
	// The caller closes the returned *sql.DB when done.
	Connect(ctx context.Context) (*sql.DB, error)
}

// ConnectorFactory builds a Connector for parsed connection parameters.
type ConnectorFactory func(config *ConnectionConfig) (Connector, error)
