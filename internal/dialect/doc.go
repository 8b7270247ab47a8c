// Package dialect holds the per-engine SQL rendering rules used to build the
// CREATE TABLE and INSERT statements of a load.
//
// Supported dialects:
//   - sqlserver: bracket identifiers, @pN placeholders (default)
//   - postgres:  double-quoted identifiers, $N placeholders
//   - mysql:     backtick identifiers, ? placeholders
//   - sqlite:    double-quoted identifiers, ? placeholders
//
// Every identifier taken from a CSV header is passed through
// QuoteIdentifier; the closing quote character is doubled inside the name.
package dialect
