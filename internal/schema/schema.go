// Package schema infers a table schema from CSV records and renders the
// CREATE TABLE and INSERT statements for a dialect.
package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// auditColumns are added to every table, so no inferred column may reuse
// one of their names, compared case-insensitively.
var auditColumns = []string{
	csv2table.ColumnID,
	csv2table.ColumnDateCreated,
	csv2table.ColumnDateModified,
	csv2table.ColumnUserCreatedID,
	csv2table.ColumnUserModifiedID,
}

// Infer derives the schema from the first record's keys.
// Later records never change the schema.
func Infer(table string, records []csv2table.Record) (*csv2table.Schema, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows to infer schema from", csv2table.ErrValidation)
	}
	if table == "" {
		return nil, fmt.Errorf("%w: table name is required", csv2table.ErrValidation)
	}

	columns := records[0].Keys()
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: first record has no columns", csv2table.ErrValidation)
	}
	for _, col := range columns {
		for _, audit := range auditColumns {
			if strings.EqualFold(col, audit) {
				return nil, fmt.Errorf("%w: column %q collides with audit column %q",
					csv2table.ErrValidation, col, audit)
			}
		}
	}

	return &csv2table.Schema{Table: table, Columns: columns}, nil
}

// TableNameFromPath returns the file's base name with its extension stripped.
func TableNameFromPath(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: could not determine table name from %q", csv2table.ErrValidation, path)
	}
	return name, nil
}

// CreateTable renders the CREATE TABLE statement, without a trailing semicolon.
//
// Column order: Id, the inferred columns, DateCreated, DateModified,
// UserCreatedId, UserModifiedId.
func CreateTable(d dialect.Dialect, s *csv2table.Schema) string {
	q := d.QuoteIdentifier

	columns := make([]string, 0, len(s.Columns)+5)
	columns = append(columns, fmt.Sprintf("    %s %s NOT NULL DEFAULT %s PRIMARY KEY",
		q(csv2table.ColumnID), d.KeyType(), d.KeyDefault()))
	for _, name := range s.Columns {
		columns = append(columns, fmt.Sprintf("    %s %s NOT NULL", q(name), d.TextType()))
	}
	columns = append(columns,
		fmt.Sprintf("    %s %s NOT NULL DEFAULT %s",
			q(csv2table.ColumnDateCreated), d.TimestampType(), d.CurrentUTCTimestamp()),
		fmt.Sprintf("    %s %s NULL", q(csv2table.ColumnDateModified), d.TimestampType()),
		fmt.Sprintf("    %s %s NOT NULL", q(csv2table.ColumnUserCreatedID), d.UserIDType()),
		fmt.Sprintf("    %s %s NULL", q(csv2table.ColumnUserModifiedID), d.UserIDType()),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", q(s.Table))
	b.WriteString(strings.Join(columns, ",\n"))
	b.WriteString("\n)")
	return b.String()
}

// Insert renders the parameterized INSERT for one record: the inferred
// columns followed by UserCreatedId, bound by position.
func Insert(d dialect.Dialect, s *csv2table.Schema) string {
	cols := s.InsertColumns()

	names := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, c := range cols {
		names[i] = d.QuoteIdentifier(c)
		params[i] = d.Placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdentifier(s.Table), strings.Join(names, ", "), strings.Join(params, ", "))
}

// InsertArgs returns the bind values for one record in Insert's column order.
// A column missing from the record binds NULL.
func InsertArgs(s *csv2table.Schema, rec csv2table.Record, userID string) []any {
	args := make([]any, 0, len(s.Columns)+1)
	for _, col := range s.Columns {
		if v, ok := rec.Get(col); ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	return append(args, userID)
}
