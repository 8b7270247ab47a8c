package csvload

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// decode strips a UTF-8 BOM, converts BOM-marked UTF-16 to UTF-8 and
// rejects anything that is not valid UTF-8 afterwards.
func decode(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %w", csv2table.ErrParse, err)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode input: %w", csv2table.ErrParse, err)
	}

	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8 text", csv2table.ErrParse)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return nil, fmt.Errorf("%w: input contains NUL bytes; is it a binary file?", csv2table.ErrParse)
	}
	return out, nil
}
