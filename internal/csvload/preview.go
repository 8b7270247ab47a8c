package csvload

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// Preview writes the first maxRows records as a table.
// Columns follow the first record's keys. maxRows <= 0 uses DefaultPreviewRows.
func Preview(w io.Writer, records []csv2table.Record, maxRows int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	if maxRows <= 0 {
		maxRows = csv2table.DefaultPreviewRows
	}

	headers := records[0].Keys()
	shown := records
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}

	rows := make([][]string, len(shown))
	for i, rec := range shown {
		row := make([]string, len(headers))
		for j, h := range headers {
			v, _ := rec.Get(h)
			row[j] = cell(v)
		}
		rows[i] = row
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = cell(h)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cells...).
		Rows(rows...)

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	if rest := len(records) - len(shown); rest > 0 {
		if _, err := fmt.Fprintf(w, "... (%d more rows not shown)\n", rest); err != nil {
			return err
		}
	}
	return nil
}

// cell flattens newlines and truncates to MaxPreviewColumnWidth runes.
func cell(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if utf8.RuneCountInString(s) <= csv2table.MaxPreviewColumnWidth {
		return s
	}
	r := []rune(s)
	return string(r[:csv2table.MaxPreviewColumnWidth-3]) + "..."
}
