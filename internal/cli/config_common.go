package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/csv2table/internal/config"
	"github.com/vvka-141/csv2table/internal/db"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// Environment variables consulted for the connection string, in order.
const (
	EnvConnectionString = "CSV2TABLE_CONNECTION_STRING"
	EnvDatabaseURL      = "DATABASE_URL"
)

// loadProjectConfig loads .env and csv2table.yaml from dir.
// Returns an empty config if csv2table.yaml does not exist.
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("%w: %w", csv2table.ErrValidation, err)
	}
	return projectCfg, nil
}

// connectionStringFromEnv returns the first non-empty connection string from
// CSV2TABLE_CONNECTION_STRING or DATABASE_URL.
func connectionStringFromEnv() string {
	if s := os.Getenv(EnvConnectionString); s != "" {
		return s
	}
	return os.Getenv(EnvDatabaseURL)
}

// resolveConnection picks the connection string by precedence
// (flag > csv2table.yaml > environment), parses it and applies a dialect override.
func resolveConnection(flagConn, flagDialect string, projectCfg *config.ProjectConfig) (*csv2table.ConnectionConfig, error) {
	connStr := flagConn
	if connStr == "" {
		connStr = projectCfg.Connection
	}
	if connStr == "" {
		connStr = connectionStringFromEnv()
	}
	if connStr == "" {
		return nil, fmt.Errorf("%w: connection string is required\n"+
			"Provide via:\n"+
			"  1. --connection/-c flag: csv2table createandload -f people.csv -c \"Server=.;Database=Imports;Integrated Security=true\"\n"+
			"  2. csv2table.yaml: connection: postgresql://user@host/imports\n"+
			"  3. Environment variable: export %s=...", csv2table.ErrValidation, EnvConnectionString)
	}

	connConfig, err := db.ParseConnectionString(connStr)
	if err != nil {
		return nil, err
	}

	name := flagDialect
	if name == "" {
		name = projectCfg.Dialect
	}
	if name != "" {
		if err := db.SetDialect(connConfig, name); err != nil {
			return nil, err
		}
	}
	return connConfig, nil
}

// resolveUserID returns the flag value, then the config value, then a new UUID.
func resolveUserID(flagUser string, projectCfg *config.ProjectConfig) string {
	if v := strings.TrimSpace(flagUser); v != "" {
		return v
	}
	if v := strings.TrimSpace(projectCfg.User); v != "" {
		return v
	}
	return uuid.NewString()
}

// firstNonEmpty returns the flag value unless it is empty.
func firstNonEmpty(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

// resolvePreviewRows prefers an explicit flag, then csv2table.yaml.
func resolvePreviewRows(cmd *cobra.Command, name string, flagRows int, projectCfg *config.ProjectConfig) (int, error) {
	rows := flagRows
	if !cmd.Flags().Changed(name) && projectCfg.PreviewRows > 0 {
		rows = projectCfg.PreviewRows
	}
	if rows < 0 {
		return 0, fmt.Errorf("%w: --%s cannot be negative", csv2table.ErrValidation, name)
	}
	return rows, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring csv2table.yaml if the flag wasn't set.
func resolveEffectiveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	if projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := projectCfg.TimeoutDuration()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", csv2table.ErrValidation, err)
		}
		return parsed, nil
	}
	if flagTimeout <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive", csv2table.ErrValidation)
	}
	return flagTimeout, nil
}
