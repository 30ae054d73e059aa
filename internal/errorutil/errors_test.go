package errorutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghettovoice/gourl/internal/errorutil"
)

const errSentinel errorutil.Error = "sentinel"

const errCode errorutil.Error = "some-code"

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []any
		wantMsg string
		wantIs  []error
	}{
		{"no args", nil, "sentinel", []error{errSentinel}},
		{"string", []any{"boom"}, "sentinel: boom", []error{errSentinel}},
		{"format", []any{"bad %q", "x"}, `sentinel: bad "x"`, []error{errSentinel}},
		{"error", []any{errCode}, "sentinel: some-code", []error{errSentinel, errCode}},
		{"error with detail", []any{errCode, "at %d", 3}, "sentinel: some-code: at 3", []error{errSentinel, errCode}},
		{"already wrapped", []any{errorutil.NewWrapperError(errSentinel, "x")}, "sentinel: x", []error{errSentinel}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errSentinel, c.args...)
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("NewWrapperError(%v).Error() = %q, want %q", c.args, got, c.wantMsg)
			}
			for _, want := range c.wantIs {
				if !errors.Is(err, want) {
					t.Errorf("errors.Is(%v, %v) = false, want true", err, want)
				}
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("parse", nil, nil); err != nil {
		t.Errorf("JoinPrefix(nil, nil) = %v, want nil", err)
	}

	err := errorutil.JoinPrefix("parse", errSentinel)
	if got, want := err.Error(), "parse: sentinel"; got != want {
		t.Errorf("JoinPrefix(single).Error() = %q, want %q", got, want)
	}

	err = errorutil.JoinPrefix("parse", errSentinel, nil, errCode)
	if !errors.Is(err, errSentinel) || !errors.Is(err, errCode) {
		t.Errorf("JoinPrefix(multi) = %v, want both errors wrapped", err)
	}
	if got := err.Error(); !strings.Contains(got, "\n  - sentinel") || !strings.Contains(got, "\n  - some-code") {
		t.Errorf("JoinPrefix(multi).Error() = %q, want bulleted list", got)
	}
}
