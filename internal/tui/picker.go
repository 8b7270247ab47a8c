// Package tui holds the terminal file picker used when the input file is missing.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// FileOption is one candidate shown by the picker.
type FileOption struct {
	Path string
	Size int64
}

// Picker is a bubbletea model that selects one CSV file.
type Picker struct {
	title     string
	options   []FileOption
	cursor    int
	selected  int
	keys      pickerKeyMap
	submitted bool
	cancelled bool
}

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewPicker creates a picker over options.
func NewPicker(title string, options []FileOption) Picker {
	return Picker{
		title:    title,
		options:  options,
		selected: -1,
		keys:     defaultPickerKeyMap(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.Select):
		if len(p.options) > 0 {
			p.selected = p.cursor
			p.submitted = true
		}
		return p, tea.Quit
	case key.Matches(keyMsg, p.keys.Quit):
		p.cancelled = true
		return p, tea.Quit
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(p.title))
	b.WriteString("\n\n")

	for i, opt := range p.options {
		style, symbol := UnselectedStyle, SymbolUnselected
		if i == p.cursor {
			style, symbol = SelectedStyle, SymbolSelected
		}
		b.WriteString(style.Render(symbol + " " + filepath.Base(opt.Path)))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(humanize.Bytes(uint64(opt.Size))))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("\n↑/↓ navigate • enter select • q quit"))
	return b.String()
}

// Cancelled reports whether the user quit without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Value returns the chosen path, or "" when nothing was chosen.
func (p Picker) Value() string {
	if !p.submitted || p.selected < 0 || p.selected >= len(p.options) {
		return ""
	}
	return p.options[p.selected].Path
}

// ListCSVFiles returns the *.csv files of dir sorted by name.
func ListCSVFiles(dir string) ([]FileOption, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var options []FileOption
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		options = append(options, FileOption{Path: filepath.Join(dir, e.Name()), Size: info.Size()})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Path < options[j].Path })
	return options, nil
}

// PickCSVFile shows the picker over the CSV files in dir. It returns
// csv2table.ErrNoFileSelected when there is nothing to pick or the user quits.
func PickCSVFile(dir string) (string, error) {
	options, err := ListCSVFiles(dir)
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no CSV files in %s: %w", dir, csv2table.ErrNoFileSelected)
	}

	final, err := tea.NewProgram(NewPicker("Select a file", options)).Run()
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}

	picker, ok := final.(Picker)
	if !ok {
		return "", errors.New("file picker: unexpected model")
	}
	if picker.Value() == "" {
		return "", csv2table.ErrNoFileSelected
	}
	return picker.Value(), nil
}
