package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csv2table/internal/csvload"
	"github.com/vvka-141/csv2table/internal/db"
	"github.com/vvka-141/csv2table/internal/schema"
	"github.com/vvka-141/csv2table/internal/services"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

var createAndLoadCmd = &cobra.Command{
	Use:   "createandload",
	Short: "Create a table from a CSV file and load its rows",
	Long: `Createandload reads the CSV file, prints the generated CREATE TABLE
statement and a preview of the data, then creates the table and inserts every
row in one transaction.

The table is named after the file (people.csv becomes people). Running twice
against the same database fails because the table already exists.

If the file does not exist and the terminal is interactive, a picker lists
the CSV files of the working directory.

Connection string precedence:
  --connection > csv2table.yaml > $CSV2TABLE_CONNECTION_STRING > $DATABASE_URL

Examples:
  # SQL Server, ADO.NET style
  csv2table createandload -f people.csv -c "Server=.;Database=Imports;Integrated Security=true"

  # PostgreSQL with an explicit audit user and a semicolon delimiter
  csv2table createandload -f people.csv -c postgresql://loader@localhost/imports \
    -u 6f1c2d34-5a6b-4c7d-8e9f-0a1b2c3d4e5f --delimiter ";"

  # Local SQLite file
  csv2table createandload -f people.csv -c imports.db`,
	Args: cobra.NoArgs,
	RunE: runCreateAndLoad,
}

type createAndLoadFlagValues struct {
	file       string
	connection string
	user       string
	delimiter  string
	table      string
	dialect    string
	preview    int
	timeout    time.Duration
}

var createAndLoadFlags createAndLoadFlagValues

func init() {
	rootCmd.AddCommand(createAndLoadCmd)

	f := createAndLoadCmd.Flags()
	f.StringVarP(&createAndLoadFlags.file, "file", "f", "",
		"CSV file to load. The table is named after the file's base name")
	f.StringVarP(&createAndLoadFlags.connection, "connection", "c", "",
		"Connection string (ADO.NET, postgresql://, mysql://, sqlserver:// or a SQLite path)\n"+
			"Alternative: csv2table.yaml, CSV2TABLE_CONNECTION_STRING or DATABASE_URL")
	f.StringVarP(&createAndLoadFlags.user, "user", "u", "",
		"UUID recorded in UserCreatedId for every row (default: a new UUID)")
	f.StringVar(&createAndLoadFlags.delimiter, "delimiter", "",
		"Field delimiter: a single character, \"tab\" or \"space\" (default: detected from the header)")
	f.StringVar(&createAndLoadFlags.table, "table", "",
		"Table name (default: the file's base name)")
	f.StringVar(&createAndLoadFlags.dialect, "dialect", "",
		"Override the detected dialect: sqlserver|postgres|mysql|sqlite")
	f.IntVar(&createAndLoadFlags.preview, "preview", csv2table.DefaultPreviewRows,
		"Number of rows to preview before loading (0 disables the preview)")
	f.DurationVar(&createAndLoadFlags.timeout, "timeout", csv2table.DefaultTimeout,
		"Catastrophic failure protection timeout for the whole run\n"+
			"Examples: 30s, 5m, 1h30m")
}

// loadPlan is everything a load needs once flags and config are resolved.
type loadPlan struct {
	file        string
	delimiter   string
	previewRows int
	timeout     time.Duration
	request     csv2table.LoadRequest
}

// buildLoadPlan resolves flags, csv2table.yaml and the environment.
// The CSV file is not read yet.
func buildLoadPlan(cmd *cobra.Command, flags createAndLoadFlagValues) (*loadPlan, error) {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return nil, err
	}

	file, err := resolveInputFile(flags.file)
	if err != nil {
		return nil, err
	}

	table := flags.table
	if table == "" {
		table, err = schema.TableNameFromPath(file)
		if err != nil {
			return nil, err
		}
	}

	connConfig, err := resolveConnection(flags.connection, flags.dialect, projectCfg)
	if err != nil {
		return nil, err
	}

	previewRows, err := resolvePreviewRows(cmd, "preview", flags.preview, projectCfg)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, flags.timeout)
	if err != nil {
		return nil, err
	}

	return &loadPlan{
		file:        file,
		delimiter:   firstNonEmpty(flags.delimiter, projectCfg.Delimiter),
		previewRows: previewRows,
		timeout:     timeout,
		request: csv2table.LoadRequest{
			TableName:  table,
			Connection: connConfig,
			UserID:     resolveUserID(flags.user, projectCfg),
		},
	}, nil
}

func runCreateAndLoad(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	plan, err := buildLoadPlan(cmd, createAndLoadFlags)
	if err != nil {
		return err
	}

	logger.Info("Loading %s", plan.file)
	records, err := csvload.Load(plan.file, plan.delimiter)
	if err != nil {
		return err
	}
	logger.Verbose("Read %d rows from %s", len(records), plan.file)
	plan.request.Records = records

	out := cmd.OutOrStdout()
	if plan.previewRows > 0 {
		if err := csvload.Preview(out, records, plan.previewRows); err != nil {
			return err
		}
	}

	loader := services.NewTableLoaderService(
		db.Factory(logger),
		logger,
		services.WithStatementHook(func(statement string) {
			fmt.Fprintln(out, "Generated SQL CREATE TABLE statement:")
			fmt.Fprintln(out, statement+";")
		}),
	)

	// Setup context with timeout and signal handling for graceful shutdown
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, plan.timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Creating and loading table %s (%s, user %s)",
		plan.request.TableName, plan.request.Connection.Dialect, plan.request.UserID)

	result, err := loader.CreateAndLoad(ctx, plan.request)
	if err != nil {
		return fmt.Errorf("create and load %s: %w", plan.request.TableName, err)
	}

	fmt.Fprintf(out, "Table %s created and %d rows inserted.\n", result.Table, result.RowsInserted)
	return nil
}
