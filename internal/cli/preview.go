package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/csv2table/internal/csvload"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the first rows of a CSV file as a table",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

type previewFlagValues struct {
	file      string
	rows      int
	delimiter string
}

var previewFlags previewFlagValues

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewFlags.file, "file", "f", "", "CSV file to read")
	previewCmd.Flags().IntVar(&previewFlags.rows, "rows", csv2table.DefaultPreviewRows, "Number of data rows to show")
	previewCmd.Flags().StringVar(&previewFlags.delimiter, "delimiter", "",
		"Field delimiter: a single character, \"tab\" or \"space\" (default: detected)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return err
	}

	file, err := resolveInputFile(previewFlags.file)
	if err != nil {
		return err
	}

	rows, err := resolvePreviewRows(cmd, "rows", previewFlags.rows, projectCfg)
	if err != nil {
		return err
	}

	records, err := csvload.Load(file, firstNonEmpty(previewFlags.delimiter, projectCfg.Delimiter))
	if err != nil {
		return err
	}
	return csvload.Preview(cmd.OutOrStdout(), records, rows)
}
