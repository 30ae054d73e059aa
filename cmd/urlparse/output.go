package main

import (
	"encoding/json"
	"io"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/util"
)

// writeOutput writes v in the given format, text output is written by the text function.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch util.ASCIILCase(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(enc.Close())
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errtrace.Wrap(enc.Encode(v))
	case "text":
		return errtrace.Wrap(text(w))
	default:
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown output format %q", format))
	}
}
