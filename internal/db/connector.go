package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/internal/logging"
	"github.com/vvka-141/csv2table/internal/retry"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// The run holds a single transaction, so one connection is enough.
const (
	DefaultMaxOpenConns    = 1
	DefaultConnMaxIdleTime = 5 * time.Minute
)

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxOpenConns)
	db.SetConnMaxIdleTime(DefaultConnMaxIdleTime)
}

func newRetryExecutor(logger csv2table.Logger, target string) *retry.Executor {
	strategy := retry.NewExponentialBackoff(csv2table.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(csv2table.DefaultRetryInitialDelay),
		retry.WithMaxDelay(csv2table.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Info("Connection to %s failed (attempt %d), retrying in %v: %v", target, attempt+1, delay, err)
		})
}

// StandardConnector opens a pool with the credentials from the connection
// string, retrying transient failures.
type StandardConnector struct {
	config        *csv2table.ConnectionConfig
	dialect       dialect.Dialect
	logger        csv2table.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector returns a connector for any supported dialect.
func NewStandardConnector(config *csv2table.ConnectionConfig, logger csv2table.Logger) (*StandardConnector, error) {
	d, err := dialect.Lookup(config.Dialect)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &StandardConnector{
		config:        config,
		dialect:       d,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger, describe(config)),
	}, nil
}

// Connect implements csv2table.Connector.
func (c *StandardConnector) Connect(ctx context.Context) (*sql.DB, error) {
	dsn, err := BuildDSN(c.config)
	if err != nil {
		return nil, err
	}

	c.logger.Verbose("Connecting to %s with driver %s", describe(c.config), c.dialect.DriverName())
	return connectWithRetry(ctx, c.retryExecutor, c.config, func() (*sql.DB, error) {
		return sql.Open(c.dialect.DriverName(), dsn)
	})
}

// connectWithRetry opens and pings a pool until it answers.
func connectWithRetry(
	ctx context.Context,
	executor *retry.Executor,
	config *csv2table.ConnectionConfig,
	open func() (*sql.DB, error),
) (*sql.DB, error) {
	var db *sql.DB

	err := executor.Execute(ctx, func(ctx context.Context) error {
		pool, err := open()
		if err != nil {
			return wrapConnectionError(err, config)
		}
		configurePool(pool)

		if err := pool.PingContext(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, config)
		}

		db = pool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// NewConnector selects a connector by auth method. Cloud token auth is
// available for PostgreSQL only.
func NewConnector(config *csv2table.ConnectionConfig, logger csv2table.Logger) (csv2table.Connector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	if config.AuthMethod != csv2table.AuthMethodStandard {
		d, err := dialect.Lookup(config.Dialect)
		if err != nil {
			return nil, err
		}
		if d.Name() != dialect.Postgres {
			return nil, fmt.Errorf("%v auth is not available for %s: %w",
				config.AuthMethod, d.Name(), csv2table.ErrUnsupportedAuthMethod)
		}
	}

	switch config.AuthMethod {
	case csv2table.AuthMethodStandard:
		return NewStandardConnector(config, logger)
	case csv2table.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case csv2table.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case csv2table.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, csv2table.ErrUnsupportedAuthMethod)
	}
}

// Factory adapts NewConnector to csv2table.ConnectorFactory.
func Factory(logger csv2table.Logger) csv2table.ConnectorFactory {
	return func(config *csv2table.ConnectionConfig) (csv2table.Connector, error) {
		return NewConnector(config, logger)
	}
}

// describe names the target without credentials.
func describe(config *csv2table.ConnectionConfig) string {
	switch {
	case config.Dialect == dialect.SQLite:
		return fmt.Sprintf("sqlite database %q", config.Database)
	case config.GoogleInstance != "":
		return fmt.Sprintf("%s instance %s/%s", config.Dialect, config.GoogleInstance, config.Database)
	default:
		return fmt.Sprintf("%s server %s/%s", config.Dialect, hostPort(config), config.Database)
	}
}

// wrapConnectionError adds guidance for the common connection failures and
// marks the result as a database error.
func wrapConnectionError(err error, config *csv2table.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	target := describe(config)

	var hint string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		hint = fmt.Sprintf(`connection refused by %s

Possible causes:
  - The database server is not running
  - Wrong host or port
  - Firewall blocking the connection`, target)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		hint = fmt.Sprintf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable`, config.Host)

	case strings.Contains(errStr, "password authentication failed"),
		strings.Contains(errStr, "login failed"),
		strings.Contains(errStr, "access denied"):
		hint = fmt.Sprintf(`authentication failed for %s

Possible causes:
  - Wrong user name or password
  - User has no access to database %q`, target, config.Database)

	case strings.Contains(errStr, "does not exist") || strings.Contains(errStr, "unknown database") ||
		strings.Contains(errStr, "cannot open database"):
		hint = fmt.Sprintf(`database %q does not exist

Create it first; csv2table only creates tables.`, config.Database)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		hint = fmt.Sprintf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host or port`, target)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "certificate"):
		hint = `SSL/TLS negotiation failed

Possible causes:
  - Server requires encryption but sslmode disables it
  - Certificate verification failed (try sslmode=require, or TrustServerCertificate=true for SQL Server)`

	case strings.Contains(errStr, "unable to open database file"):
		hint = fmt.Sprintf(`cannot open sqlite file %q

Check that the directory exists and is writable.`, config.Database)

	default:
		return fmt.Errorf("%w: failed to connect to %s: %w", csv2table.ErrDatabase, target, err)
	}

	return fmt.Errorf("%w: %s\n\nOriginal error: %w", csv2table.ErrDatabase, hint, err)
}
