package csv2table

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Schema describes the table generated for one load.
// It is derived from the first record and discarded after the run.
type Schema struct {
	// Table is the unescaped target table name.
	Table string

	// Columns are the inferred column names in header order.
	// The audit columns are not included; see AllColumns.
	Columns []string
}

// AllColumns returns the physical column order of the generated table:
// Id, the inferred columns, then the audit columns.
func (s *Schema) AllColumns() []string {
	cols := make([]string, 0, len(s.Columns)+5)
	cols = append(cols, ColumnID)
	cols = append(cols, s.Columns...)
	cols = append(cols, ColumnDateCreated, ColumnDateModified, ColumnUserCreatedID, ColumnUserModifiedID)
	return cols
}

// InsertColumns returns the columns bound by each INSERT: the inferred
// columns followed by UserCreatedId.
func (s *Schema) InsertColumns() []string {
	cols := make([]string, 0, len(s.Columns)+1)
	cols = append(cols, s.Columns...)
	return append(cols, ColumnUserCreatedID)
}

// LoadRequest contains everything needed to create and load one table.
type LoadRequest struct {
	// TableName is the target table, usually the input file's base name.
	TableName string

	// Records are the rows to insert; the first one defines the schema.
	Records []Record

	// Connection holds the parsed connection parameters.
	Connection *ConnectionConfig

	// UserID is stored in UserCreatedId for every row. Must be a UUID.
	UserID string
}

// Validate checks the preconditions of a load.
// It returns a multi-error wrapping ErrValidation if anything is missing.
func (r *LoadRequest) Validate() error {
	var errs []error

	if len(r.Records) == 0 {
		errs = append(errs, fmt.Errorf("%w: no records to infer schema from", ErrValidation))
	}

	if r.TableName == "" {
		errs = append(errs, fmt.Errorf("%w: table name is required", ErrValidation))
	}

	if r.Connection == nil {
		errs = append(errs, fmt.Errorf("%w: connection parameters are required", ErrValidation))
	} else if err := r.Connection.Validate(); err != nil {
		errs = append(errs, err)
	}

	if r.UserID == "" {
		errs = append(errs, fmt.Errorf("%w: user identifier is required", ErrValidation))
	} else if _, err := uuid.Parse(r.UserID); err != nil {
		errs = append(errs, fmt.Errorf("%w: user identifier %q is not a UUID", ErrValidation, r.UserID))
	}

	return errors.Join(errs...)
}

// LoadResult reports a successful load.
type LoadResult struct {
	// Table is the unescaped table name.
	Table string

	// Statement is the CREATE TABLE statement that was executed.
	Statement string

	// RowsInserted is the number of records inserted.
	RowsInserted int

	// Duration is the wall time from connect to commit.
	Duration time.Duration
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	// Dialect is the SQL dialect name: sqlserver, postgres, mysql or sqlite.
	Dialect string

	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// AWS IAM authentication (PostgreSQL only)
	AWSRegion string

	// Azure Entra ID authentication (PostgreSQL only).
	// If all three are provided, Service Principal authentication is used,
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance).
	GoogleInstance string
}

// Validate checks that the connection parameters are usable.
func (c *ConnectionConfig) Validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("%w: connection dialect is required", ErrValidation)
	}
	if c.Database == "" && c.Host == "" && c.GoogleInstance == "" {
		return fmt.Errorf("%w: connection string names no server or database", ErrValidation)
	}
	if !c.AuthMethod.IsValid() {
		return fmt.Errorf("%w: invalid auth method %v", ErrValidation, c.AuthMethod)
	}
	return nil
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
