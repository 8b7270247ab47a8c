package csv2table

import "time"

// Exit codes reported by the csv2table command.
// Negative codes keep the values the tool has always returned; POSIX shells
// observe them modulo 256 (e.g. -20 becomes 236).
const (
	ExitSuccess          = 0   // Table created and loaded
	ExitUsageError       = 1   // CLI usage error (missing args, invalid flags)
	ExitNoFileSelected   = -5  // Input file missing and nothing picked
	ExitCSVLoadFailed    = -10 // CSV could not be opened, decoded or parsed
	ExitValidationFailed = -15 // Bad or missing arguments, empty input
	ExitDatabaseFailed   = -20 // Connection, DDL or DML failure
	ExitPanic            = -99 // Internal panic or unclassified error
	ExitGeneralError     = ExitPanic
)

const (
	// DefaultRetryInitialDelay is the initial delay before the first connection retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay caps the delay between connection retries.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the number of connection retries after the first attempt.
	DefaultRetryMaxAttempts = 3

	// DefaultTimeout bounds a whole createandload run.
	DefaultTimeout = 3 * time.Minute

	// DefaultPreviewRows is the number of data rows shown by the preview.
	DefaultPreviewRows = 20

	// MaxPreviewColumnWidth is the width at which preview cells are truncated.
	MaxPreviewColumnWidth = 40

	// TextColumnLength is the length of every inferred text column.
	TextColumnLength = 255

	// MaxErrorPreviewLength limits how much of a failing row is echoed in errors.
	MaxErrorPreviewLength = 200
)

// Audit column names added to every generated table.
const (
	ColumnID             = "Id"
	ColumnDateCreated    = "DateCreated"
	ColumnDateModified   = "DateModified"
	ColumnUserCreatedID  = "UserCreatedId"
	ColumnUserModifiedID = "UserModifiedId"
)
