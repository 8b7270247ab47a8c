package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vvka-141/csv2table/internal/retry"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// TokenProvider acquires a short-lived token used as the database password.
type TokenProvider interface {
	// GetToken returns the token and its expiry.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. It must not include secrets.
	String() string
}

// tokenExpiryWarning is how close to expiry a fresh token triggers a warning.
const tokenExpiryWarning = 5 * time.Minute

// TokenConnector authenticates to PostgreSQL with cloud tokens.
// A fresh token is requested for every physical connection the pool opens.
type TokenConnector struct {
	config        *csv2table.ConnectionConfig
	provider      TokenProvider
	providerName  string
	logger        csv2table.Logger
	retryExecutor *retry.Executor
}

// NewTokenConnector returns a connector using provider for passwords.
// providerName appears in logs and errors, e.g. "AWS IAM".
func NewTokenConnector(
	config *csv2table.ConnectionConfig,
	provider TokenProvider,
	providerName string,
	logger csv2table.Logger,
) *TokenConnector {
	return &TokenConnector{
		config:        config,
		provider:      provider,
		providerName:  providerName,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger, describe(config)),
	}
}

// Connect implements csv2table.Connector.
func (c *TokenConnector) Connect(ctx context.Context) (*sql.DB, error) {
	withoutPassword := *c.config
	withoutPassword.Password = ""

	connConfig, err := pgx.ParseConfig(buildPostgresURI(&withoutPassword))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse connection config: %w", csv2table.ErrValidation, err)
	}

	c.logger.Verbose("Connecting to %s using %s", describe(c.config), c.provider)

	beforeConnect := stdlib.OptionBeforeConnect(func(ctx context.Context, cc *pgx.ConnConfig) error {
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}
		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
		}
		cc.Password = token
		return nil
	})

	return connectWithRetry(ctx, c.retryExecutor, c.config, func() (*sql.DB, error) {
		return stdlib.OpenDB(*connConfig, beforeConnect), nil
	})
}
