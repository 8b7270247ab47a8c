package csvload

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

func TestPreview_TruncatesRows(t *testing.T) {
	keys := []string{"id", "name"}
	var records []csv2table.Record
	for i := 0; i < 25; i++ {
		records = append(records, csv2table.NewRecord(keys, []string{fmt.Sprint(i), "row"}))
	}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, records, 20))

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "19")
	assert.NotContains(t, out, "24")
	assert.Contains(t, out, "... (5 more rows not shown)")
}

func TestPreview_AllRowsShown(t *testing.T) {
	records := []csv2table.Record{csv2table.NewRecord([]string{"a"}, []string{"x"})}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, records, 0))
	assert.NotContains(t, buf.String(), "more rows not shown")
}

func TestPreview_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, nil, 5))
	assert.Equal(t, "(no rows)\n", buf.String())
}

func TestCell(t *testing.T) {
	assert.Equal(t, "a b c", cell("a\nb\r\nc"))
	assert.Equal(t, "short", cell("short"))

	long := strings.Repeat("x", 50)
	got := cell(long)
	assert.Equal(t, csv2table.MaxPreviewColumnWidth, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
