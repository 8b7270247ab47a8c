package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csv2table/internal/csvload"
	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the CREATE TABLE statement for a CSV file",
	Long: `Schema reads the CSV file and prints the CREATE TABLE statement that
createandload would execute. No database is contacted.

Examples:
  csv2table schema -f people.csv
  csv2table schema -f people.csv --dialect postgres --table staging_people`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

type schemaFlagValues struct {
	file      string
	dialect   string
	delimiter string
	table     string
}

var schemaFlags schemaFlagValues

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaFlags.file, "file", "f", "", "CSV file to read")
	schemaCmd.Flags().StringVar(&schemaFlags.dialect, "dialect", "",
		"SQL dialect: sqlserver|postgres|mysql|sqlite (default: csv2table.yaml, then sqlserver)")
	schemaCmd.Flags().StringVar(&schemaFlags.delimiter, "delimiter", "",
		"Field delimiter: a single character, \"tab\" or \"space\" (default: detected)")
	schemaCmd.Flags().StringVar(&schemaFlags.table, "table", "", "Table name (default: the file's base name)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return err
	}

	file, err := resolveInputFile(schemaFlags.file)
	if err != nil {
		return err
	}

	name := firstNonEmpty(schemaFlags.dialect, projectCfg.Dialect)
	if name == "" {
		name = dialect.SQLServer
	}
	d, err := dialect.Lookup(name)
	if err != nil {
		return err
	}

	table := schemaFlags.table
	if table == "" {
		if table, err = schema.TableNameFromPath(file); err != nil {
			return err
		}
	}

	records, err := csvload.Load(file, firstNonEmpty(schemaFlags.delimiter, projectCfg.Delimiter))
	if err != nil {
		return err
	}

	tableSchema, err := schema.Infer(table, records)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), schema.CreateTable(d, tableSchema)+";")
	return nil
}
