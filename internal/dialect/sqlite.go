package dialect

type sqlite struct{}

func (sqlite) Name() string { return SQLite }
func (sqlite) DriverName() string { return "sqlite" }

func (sqlite) QuoteIdentifier(name string) string { return quote(`"`, `"`, name) }

func (sqlite) Placeholder(int) string { return "?" }

func (sqlite) TextType() string { return textType() }
func (sqlite) KeyType() string { return "TEXT" }

// sqliteUUID formats 16 random bytes as a version 4 UUID.
const sqliteUUID = "(lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || " +
	"substr(hex(randomblob(2)), 2) || '-' || substr('89ab', 1 + (abs(random()) % 4), 1) || " +
	"substr(hex(randomblob(2)), 2) || '-' || hex(randomblob(6))))"

func (sqlite) KeyDefault() string { return sqliteUUID }

// CURRENT_TIMESTAMP is UTC in SQLite.
func (sqlite) TimestampType() string { return "DATETIME" }
func (sqlite) CurrentUTCTimestamp() string { return "CURRENT_TIMESTAMP" }
func (sqlite) UserIDType() string { return "TEXT" }
func (sqlite) TransactionalDDL() bool { return true }
