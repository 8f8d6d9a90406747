package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// Format represents the output format.
type Format string

const (
	FormatRaw   Format = "raw"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatRaw, FormatJSON, FormatYAML, FormatTable}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a format name. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !lo.Contains(Formats, f) {
		names := lo.Map(Formats, func(f Format, _ int) string { return string(f) })
		return "", fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return f, nil
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &RawFormatter{}
	}
}
