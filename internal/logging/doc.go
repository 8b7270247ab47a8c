// Package logging provides implementations of the csv2table.Logger interface.
//
//   - ZapLogger: structured logging to stderr through go.uber.org/zap, in
//     console (default) or JSON form. Verbose messages are logged at debug
//     level and only appear in verbose mode.
//   - NullLogger: discards everything; for tests.
//
// Both are safe for concurrent use.
package logging
