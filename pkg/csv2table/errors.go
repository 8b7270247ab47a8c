package csv2table

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of a load.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	_, err := loader.CreateAndLoad(ctx, req)
//	if errors.Is(err, csv2table.ErrValidation) {
//	    // bad input, the database was never touched
//	}
var (
	// ErrValidation indicates bad or missing arguments or empty input.
	// Reported before any database call is made.
	ErrValidation = errors.New("validation failed")

	// ErrParse indicates the CSV file could not be opened, decoded or parsed.
	ErrParse = errors.New("csv parse failed")

	// ErrDatabase indicates a connection, DDL or DML failure.
	// The load transaction has been rolled back.
	ErrDatabase = errors.New("database operation failed")

	// ErrNoFileSelected indicates the input file does not exist and none was picked.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrUnsupportedDialect indicates an unknown SQL dialect name.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrUnsupportedAuthMethod indicates the authentication method cannot be used
	// with the requested dialect.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// usagePatterns are fragments of the errors cobra returns for bad invocations.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the exit code for an error.
// Returns ExitSuccess for nil, a class code for the sentinel errors,
// ExitUsageError for CLI misuse and ExitGeneralError otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoFileSelected):
		return ExitNoFileSelected
	case errors.Is(err, ErrParse):
		return ExitCSVLoadFailed
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnsupportedDialect),
		errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitValidationFailed
	case errors.Is(err, ErrDatabase):
		return ExitDatabaseFailed
	}

	msg := err.Error()
	for _, pattern := range usagePatterns {
		if strings.Contains(msg, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
