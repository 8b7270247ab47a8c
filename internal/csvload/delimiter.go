package csvload

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// DefaultDelimiter is used when detection finds no candidate.
const DefaultDelimiter = ','

// candidates are tried in priority order against the first line.
var candidates = []rune{',', ';', '|'}

// ResolveDelimiter turns a user hint into a delimiter rune.
// "tab" and "space" are named (case-insensitive); any other non-empty hint
// is used literally by its first rune. An empty hint reports ok=false so the
// caller falls back to detection.
func ResolveDelimiter(hint string) (r rune, ok bool, err error) {
	if hint == "" {
		return 0, false, nil
	}

	switch strings.ToLower(hint) {
	case "tab":
		return '\t', true, nil
	case "space":
		return ' ', true, nil
	}

	r, _ = utf8.DecodeRuneInString(hint)
	if !validDelimiter(r) {
		return 0, false, fmt.Errorf("%w: invalid delimiter %q", csv2table.ErrValidation, hint)
	}
	return r, true, nil
}

// DetectDelimiter picks the first candidate present in the first line of data.
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		line = data[:i]
	}

	for _, c := range candidates {
		if bytes.ContainsRune(line, c) {
			return c
		}
	}
	return DefaultDelimiter
}

// validDelimiter mirrors the restrictions of encoding/csv.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError
}
