package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// Dialect names.
const (
	SQLServer = "sqlserver"
	Postgres  = "postgres"
	MySQL     = "mysql"
	SQLite    = "sqlite"

	// Default is used when nothing identifies the engine.
	Default = SQLServer
)

// Dialect renders the engine-specific parts of the generated statements.
type Dialect interface {
	// Name returns the canonical dialect name.
	Name() string

	// DriverName returns the database/sql driver name.
	DriverName() string

	// QuoteIdentifier escapes a table or column name for embedding in SQL.
	QuoteIdentifier(name string) string

	// Placeholder returns the bind parameter for a 1-based position.
	Placeholder(position int) string

	// TextType is the type of every inferred column.
	TextType() string

	// KeyType and KeyDefault define the generated Id primary key.
	KeyType() string
	KeyDefault() string

	// TimestampType and CurrentUTCTimestamp define DateCreated/DateModified.
	TimestampType() string
	CurrentUTCTimestamp() string

	// UserIDType is the type of UserCreatedId and UserModifiedId.
	UserIDType() string

	// TransactionalDDL reports whether CREATE TABLE is undone by a rollback.
	TransactionalDDL() bool
}

var registry = map[string]Dialect{
	SQLServer: sqlServer{},
	Postgres:  postgres{},
	MySQL:     mysql{},
	SQLite:    sqlite{},
}

var aliases = map[string]string{
	"mssql":      SQLServer,
	"sqlclient":  SQLServer,
	"postgresql": Postgres,
	"pg":         Postgres,
	"pgx":        Postgres,
	"npgsql":     Postgres,
	"mariadb":    MySQL,
	"sqlite3":    SQLite,
}

// Lookup returns the dialect registered under name or one of its aliases.
// Names are case-insensitive. An empty name selects Default.
func Lookup(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	d, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			csv2table.ErrUnsupportedDialect, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the canonical dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// quote wraps name in open/close and doubles every close inside it.
func quote(open, close, name string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

func textType() string {
	return fmt.Sprintf("VARCHAR(%d)", csv2table.TextColumnLength)
}
