package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-campus-client/internal/core/api"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formatter renders a response envelope.
type Formatter interface {
	Format(w io.Writer, resp api.Response) error
}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatTable:
		return NewTableFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %s or %s)", name, FormatJSON, FormatTable)
	}
}
