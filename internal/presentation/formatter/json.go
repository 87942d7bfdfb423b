package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-campus-client/internal/core/api"
)

type JSONFormatter struct {
	indent string
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{indent: "  "}
}

func (f *JSONFormatter) Format(w io.Writer, resp api.Response) error {
	data, err := sonic.ConfigStd.MarshalIndent(resp, "", f.indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
