package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

func samplePicker() Picker {
	return NewPicker("Select a file", []FileOption{
		{Path: "/data/a.csv", Size: 10},
		{Path: "/data/b.csv", Size: 2048},
		{Path: "/data/c.csv", Size: 0},
	})
}

func press(t *testing.T, p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	t.Helper()
	model, cmd := p.Update(msg)
	next, ok := model.(Picker)
	require.True(t, ok)
	return next, cmd
}

func TestPicker_NavigateAndSelect(t *testing.T) {
	p := samplePicker()

	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyDown})
	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyDown})
	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyUp})

	p, cmd := press(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "/data/b.csv", p.Value())
	assert.False(t, p.Cancelled())
}

func TestPicker_CursorStaysInBounds(t *testing.T) {
	p := samplePicker()

	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyUp})
	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/data/a.csv", p.Value())
}

func TestPicker_Quit(t *testing.T) {
	p, cmd := press(t, samplePicker(), tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, p.Cancelled())
	assert.Empty(t, p.Value())
}

func TestPicker_EnterWithNoOptions(t *testing.T) {
	p, _ := press(t, NewPicker("Select a file", nil), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, p.Value())
}

func TestPicker_View(t *testing.T) {
	view := samplePicker().View()
	assert.Contains(t, view, "Select a file")
	assert.Contains(t, view, "a.csv")
	assert.Contains(t, view, "2.0 kB")
	assert.Contains(t, view, SymbolSelected)
}

func TestListCSVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.csv", "alpha.CSV", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("a\n1\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0755))

	options, err := ListCSVFiles(dir)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, filepath.Join(dir, "alpha.CSV"), options[0].Path)
	assert.Equal(t, filepath.Join(dir, "zeta.csv"), options[1].Path)
	assert.Equal(t, int64(4), options[1].Size)
}

func TestPickCSVFile_NoCandidates(t *testing.T) {
	_, err := PickCSVFile(t.TempDir())
	assert.ErrorIs(t, err, csv2table.ErrNoFileSelected)
}
