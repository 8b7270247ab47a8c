package dialect

import "fmt"

type postgres struct{}

func (postgres) Name() string { return Postgres }
func (postgres) DriverName() string { return "pgx" }

func (postgres) QuoteIdentifier(name string) string { return quote(`"`, `"`, name) }

func (postgres) Placeholder(position int) string { return fmt.Sprintf("$%d", position) }

func (postgres) TextType() string { return textType() }
func (postgres) KeyType() string { return "UUID" }

// gen_random_uuid is built in from PostgreSQL 13.
func (postgres) KeyDefault() string { return "gen_random_uuid()" }
func (postgres) TimestampType() string { return "TIMESTAMP" }
func (postgres) CurrentUTCTimestamp() string { return "(now() AT TIME ZONE 'utc')" }
func (postgres) UserIDType() string { return "UUID" }
func (postgres) TransactionalDDL() bool { return true }
