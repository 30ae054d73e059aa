package uri

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/log"
)

// ParseOptions configures the URL parser. A nil *ParseOptions is valid and uses defaults.
type ParseOptions struct {
	// Encoding is used to encode the query of special URLs, except ws and wss.
	// Nil means UTF-8. UTF-16 and replacement encodings are treated as UTF-8.
	Encoding encoding.Encoding
	// Logger receives validation errors at debug level.
	// If nil, the logger returned by log.Default is used, which discards everything by default.
	Logger *slog.Logger
	// OnValidationError is called for every validation error, fatal or not.
	OnValidationError func(ValidationError)
}

func (o *ParseOptions) encoding() encoding.Encoding {
	if o == nil {
		return nil
	}
	return grammar.OutputEncoding(o.Encoding)
}

func (o *ParseOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *ParseOptions) onValidationError() func(ValidationError) {
	if o == nil {
		return nil
	}
	return o.OnValidationError
}
