package dialect

type mysql struct{}

func (mysql) Name() string { return MySQL }
func (mysql) DriverName() string { return "mysql" }

func (mysql) QuoteIdentifier(name string) string { return quote("`", "`", name) }

func (mysql) Placeholder(int) string { return "?" }

func (mysql) TextType() string { return textType() }
func (mysql) KeyType() string { return "CHAR(36)" }

// Expression defaults need MySQL 8.0.13 or later.
func (mysql) KeyDefault() string { return "(UUID())" }
func (mysql) TimestampType() string { return "DATETIME(6)" }
func (mysql) CurrentUTCTimestamp() string { return "(UTC_TIMESTAMP(6))" }
func (mysql) UserIDType() string { return "CHAR(36)" }

// MySQL commits implicitly before and after CREATE TABLE.
func (mysql) TransactionalDDL() bool { return false }
