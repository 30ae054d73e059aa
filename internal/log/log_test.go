package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/gourl/internal/log"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, dev := range []bool{false, true} {
		var buf bytes.Buffer
		logger := log.New(&buf, slog.LevelDebug, dev)
		logger.Debug("validation error", "code", "invalid-URL-unit", "input", strings.Repeat("a", log.MaxInputLen+10))
		logger.Debug("host failure", "input", log.StringValue(strings.Repeat("a", log.MaxInputLen+10)))

		out := buf.String()
		if !strings.Contains(out, "invalid-URL-unit") {
			t.Errorf("log.New(dev=%v) output = %q, want it to contain the code", dev, out)
		}
		if strings.Contains(out, strings.Repeat("a", log.MaxInputLen+1)) {
			t.Errorf("log.New(dev=%v) output is not truncated: %q", dev, out)
		}
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Default().Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Default().Enabled() = true, want false")
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got, want := log.StringValue([]byte("abc")).LogValue().String(), "abc"; got != want {
		t.Errorf("log.StringValue().LogValue() = %q, want %q", got, want)
	}
	if got, want := log.FmtValue([]int{1}, true).LogValue().String(), "[]int{1}"; got != want {
		t.Errorf("log.FmtValue().LogValue() = %q, want %q", got, want)
	}
}

//nolint:paralleltest
func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	log.SetDefault(log.New(&buf, slog.LevelInfo, false))
	defer log.SetDefault(nil)

	log.Default().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log.Default() output = %q, want it to contain %q", buf.String(), "hello")
	}

	log.SetDefault(nil)
	if log.Default() != log.Noop {
		t.Error("log.Default() after SetDefault(nil) is not the noop logger")
	}
}
