package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vvka-141/csv2table/internal/retry"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// GoogleCloudSQLConnector connects through the Cloud SQL Go Connector with
// IAM database authentication.
//
// It implements io.Closer; call Close after closing the returned *sql.DB to
// release the dialer.
type GoogleCloudSQLConnector struct {
	config        *csv2table.ConnectionConfig
	logger        csv2table.Logger
	retryExecutor *retry.Executor
	dialer        *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector returns a connector for config.GoogleInstance
// (project:region:instance).
func NewGoogleCloudSQLConnector(config *csv2table.ConnectionConfig, logger csv2table.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger, describe(config)),
	}
}

// Connect implements csv2table.Connector.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*sql.DB, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", csv2table.ErrDatabase, err)
	}

	dsn := fmt.Sprintf("user=%s dbname=%s sslmode=disable", c.config.Username, c.config.Database)
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("%w: failed to parse connection config: %w", csv2table.ErrValidation, err)
	}

	instance := c.config.GoogleInstance
	connConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}

	c.logger.Verbose("Connecting to Cloud SQL instance %s as %s", instance, c.config.Username)
	db, err := connectWithRetry(ctx, c.retryExecutor, c.config, func() (*sql.DB, error) {
		return stdlib.OpenDB(*connConfig), nil
	})
	if err != nil {
		dialer.Close()
		return nil, err
	}

	c.dialer = dialer
	return db, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer == nil {
		return nil
	}
	err := c.dialer.Close()
	c.dialer = nil
	return err
}

func newGoogleConnector(cfg *csv2table.ConnectionConfig, logger csv2table.Logger) (csv2table.Connector, error) {
	if cfg.GoogleInstance == "" {
		return nil, fmt.Errorf("%w: Google Cloud SQL IAM auth requires Google Instance=project:region:instance", csv2table.ErrValidation)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Google Cloud SQL IAM auth requires a user name", csv2table.ErrValidation)
	}
	return NewGoogleCloudSQLConnector(cfg, logger), nil
}
