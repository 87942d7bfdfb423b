package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-campus-client/internal/core/api"
	"github.com/penwyp/go-campus-client/internal/util"
)

const (
	defaultMaxValueWidth = 80
	minColumnWidth       = 8
)

type row struct {
	key   string
	value string
	// styled replaces value on output; widths are still measured on value.
	styled string
}

// TableFormatter renders the envelope status followed by a key/value view of data.
type TableFormatter struct {
	headers       []string
	maxValueWidth int
	color         bool
}

type TableOption func(*TableFormatter)

// WithColor enables ANSI coloring of the status row.
func WithColor(enabled bool) TableOption {
	return func(f *TableFormatter) {
		f.color = enabled
	}
}

// WithMaxValueWidth caps the value column; longer values are truncated.
func WithMaxValueWidth(width int) TableOption {
	return func(f *TableFormatter) {
		if width >= minColumnWidth {
			f.maxValueWidth = width
		}
	}
}

func NewTableFormatter(opts ...TableOption) *TableFormatter {
	f := &TableFormatter{
		headers:       []string{"Field", "Value"},
		maxValueWidth: defaultMaxValueWidth,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *TableFormatter) Format(w io.Writer, resp api.Response) error {
	status := f.statusRows(resp)
	data := dataRows(resp)

	widths := f.calculateColumnWidths(append(append([]row{}, status...), data...))

	var b strings.Builder
	f.printBorder(&b, widths, "top")
	f.printRow(&b, widths, row{key: f.headers[0], value: f.headers[1]})
	f.printBorder(&b, widths, "middle")
	for _, r := range status {
		f.printRow(&b, widths, r)
	}
	if len(data) > 0 {
		f.printBorder(&b, widths, "middle")
		for _, r := range data {
			f.printRow(&b, widths, r)
		}
	}
	f.printBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) statusRows(resp api.Response) []row {
	success := row{key: "success", value: util.FormatStatus(resp.Success, false)}
	if f.color {
		success.styled = util.FormatStatus(resp.Success, true)
	}
	rows := []row{success}
	if resp.StatusCode != nil {
		rows = append(rows, row{key: "status_code", value: strconv.Itoa(*resp.StatusCode)})
	} else {
		rows = append(rows, row{key: "status_code", value: "-"})
	}
	if code, ok := resp.Code(); ok {
		rows = append(rows, row{key: "code", value: code})
	}
	if resp.Error != nil {
		rows = append(rows, row{key: "error", value: *resp.Error})
	}
	return rows
}

// dataRows flattens the top level of data. Objects are listed by sorted key,
// arrays by index, and nested values are shown as compact JSON.
func dataRows(resp api.Response) []row {
	switch v := resp.Data.(type) {
	case nil:
		if resp.RawResponse != nil && *resp.RawResponse != "" {
			return []row{{key: "raw_response", value: *resp.RawResponse}}
		}
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([]row, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, row{key: k, value: formatValue(v[k])})
		}
		return rows
	case []any:
		rows := make([]row, 0, len(v))
		for i, item := range v {
			rows = append(rows, row{key: fmt.Sprintf("[%d]", i), value: formatValue(item)})
		}
		return rows
	default:
		return []row{{key: "data", value: formatValue(v)}}
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := sonic.ConfigStd.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func (f *TableFormatter) cell(value string) string {
	return util.TruncateToWidth(util.SingleLine(value), f.maxValueWidth)
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows []row) []int {
	widths := []int{util.GetDisplayWidth(f.headers[0]), util.GetDisplayWidth(f.headers[1])}
	for _, r := range rows {
		if w := util.GetDisplayWidth(r.key); w > widths[0] {
			widths[0] = w
		}
		if w := util.GetDisplayWidth(f.cell(r.value)); w > widths[1] {
			widths[1] = w
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// printRow pads by display width so wide runes stay aligned.
func (f *TableFormatter) printRow(b *strings.Builder, widths []int, r row) {
	value := f.cell(r.value)
	padding := strings.Repeat(" ", max(0, widths[1]-util.GetDisplayWidth(value)))
	if r.styled != "" {
		value = r.styled
	}
	b.WriteString("│ ")
	b.WriteString(util.PadRight(r.key, widths[0]))
	b.WriteString(" │ ")
	b.WriteString(value)
	b.WriteString(padding)
	b.WriteString(" │\n")
}
