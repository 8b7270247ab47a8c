package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csv2table/internal/logging"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

var rootCmd = &cobra.Command{
	Use:   "csv2table",
	Short: "Create a database table from a CSV file and load its rows",
	Long: `csv2table reads a delimited text file, derives a table from its header,
creates that table and inserts every row in a single transaction.

Every inferred column is NVARCHAR(255) NOT NULL (or the dialect's equivalent).
Five audit columns are added: Id, DateCreated, DateModified, UserCreatedId
and UserModifiedId.

Supported databases: SQL Server, PostgreSQL, MySQL and SQLite. The dialect is
detected from the connection string.

Exit Codes:
  0   - Success
  1   - CLI usage error (invalid arguments or flags)
  -5  - Input file not found and none selected
  -10 - CSV file could not be loaded
  -15 - Validation failed (empty file, bad user id, bad options)
  -20 - Database operation failed (the load was rolled back)
  -99 - Panic or unexpected error`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", logging.FormatText, "Log output format: text|json")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the stderr logger from the global flags.
func newLogger(cmd *cobra.Command) (*logging.ZapLogger, error) {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format = logging.FormatText
	}
	logger, err := logging.New(logging.Options{
		Verbose: getVerboseFlag(cmd),
		Format:  format,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: --log-format: %w", csv2table.ErrValidation, err)
	}
	return logger, nil
}
