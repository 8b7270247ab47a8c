package dialect

import (
	"fmt"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

type sqlServer struct{}

func (sqlServer) Name() string { return SQLServer }
func (sqlServer) DriverName() string { return "sqlserver" }

func (sqlServer) QuoteIdentifier(name string) string { return quote("[", "]", name) }

func (sqlServer) Placeholder(position int) string { return fmt.Sprintf("@p%d", position) }

// NVARCHAR keeps non-ASCII cell values intact regardless of the database collation.
func (sqlServer) TextType() string {
	return fmt.Sprintf("NVARCHAR(%d)", csv2table.TextColumnLength)
}

func (sqlServer) KeyType() string { return "UNIQUEIDENTIFIER" }
func (sqlServer) KeyDefault() string { return "NEWID()" }
func (sqlServer) TimestampType() string { return "DATETIME2(7)" }
func (sqlServer) CurrentUTCTimestamp() string { return "SYSUTCDATETIME()" }
func (sqlServer) UserIDType() string { return "UNIQUEIDENTIFIER" }
func (sqlServer) TransactionalDDL() bool { return true }
