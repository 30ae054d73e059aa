// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gourl/internal/util"
)

// MaxInputLen limits how much of a parsed input is written to logs.
const MaxInputLen = 256

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByKey("input", func(v slog.Value) slog.Value {
		if v = v.Resolve(); v.Kind() != slog.KindString {
			return v
		}
		return slog.StringValue(util.Ellipsis(v.String(), MaxInputLen))
	}),
)

// New returns a console logger writing to w.
// If dev is true, the developer friendly handler is used instead.
func New(w io.Writer, level slog.Leveler, dev bool) *slog.Logger {
	if dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

var defLogger atomic.Pointer[slog.Logger]

// Default returns the logger used when none is configured.
// URL parsing is silent unless a logger is passed explicitly or set with [SetDefault].
func Default() *slog.Logger {
	if l := defLogger.Load(); l != nil {
		return l
	}
	return Noop
}

// SetDefault replaces the logger returned by [Default]. Nil restores the noop logger.
func SetDefault(l *slog.Logger) { defLogger.Store(l) }

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T util.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T util.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
