package cli

import (
	"fmt"
	"os"

	"github.com/vvka-141/csv2table/internal/tui"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// Swapped in tests.
var (
	isInteractive = tui.IsInteractive
	pickFile      = tui.PickCSVFile
)

// resolveInputFile returns path if it names an existing file. Otherwise an
// interactive session picks a CSV file from the working directory.
func resolveInputFile(path string) (string, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}

	if !isInteractive() {
		if path == "" {
			return "", fmt.Errorf("no file selected or found: %w", csv2table.ErrNoFileSelected)
		}
		return "", fmt.Errorf("no file selected or found: %s: %w", path, csv2table.ErrNoFileSelected)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return pickFile(dir)
}
