package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/ioutil"
)

type errorWriter struct {
	failAfter int
	written   int
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	if ew.written >= ew.failAfter {
		return 0, errtrace.Wrap(errors.New("write failed"))
	}
	n = len(p)
	if ew.written+n > ew.failAfter {
		n = ew.failAfter - ew.written
	}
	ew.written += n
	if n < len(p) {
		return n, errtrace.Wrap(errors.New("write failed"))
	}
	return n, nil
}

func TestCountingWriter_Print(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.NewCountingWriter(buf)

	num, err := cw.Print("https", ":", "//", "example.com").Result()
	if err != nil {
		t.Fatalf("cw.Print() error = %v, want nil", err)
	}
	if num != 19 {
		t.Errorf("cw.Print() num = %d, want 19", num)
	}
	if got, want := buf.String(), "https://example.com"; got != want {
		t.Errorf("buf = %q, want %q", got, want)
	}
}

func TestCountingWriter_Call(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.NewCountingWriter(buf)

	render := func(s string) func(io.Writer) (int, error) {
		return func(w io.Writer) (int, error) {
			return errtrace.Wrap2(io.WriteString(w, s))
		}
	}

	num, err := cw.Call(render("/a")).Call(render("/b")).Result()
	if err != nil {
		t.Fatalf("cw.Call() error = %v, want nil", err)
	}
	if num != 4 {
		t.Errorf("cw.Call() num = %d, want 4", num)
	}
	if got, want := buf.String(), "/a/b"; got != want {
		t.Errorf("buf = %q, want %q", got, want)
	}
}

func TestCountingWriter_ErrorStopsChain(t *testing.T) {
	t.Parallel()

	ew := &errorWriter{failAfter: 5}
	cw := ioutil.NewCountingWriter(ew)

	num, err := cw.Print("hello", " world", "!").Result()
	if err == nil {
		t.Fatal("cw.Print() error = nil, want error")
	}
	if num != 5 {
		t.Errorf("cw.Print() num = %d, want 5", num)
	}

	if n, err := cw.WriteString("more"); err == nil || n != 0 {
		t.Errorf("cw.WriteString() = (%d, %v), want (0, cached error)", n, err)
	}
	if cw.Count() != 5 {
		t.Errorf("cw.Count() = %d, want 5", cw.Count())
	}
}

func TestCountingWriter_Pool(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.GetCountingWriter(buf)
	cw.Print("abc")
	if cw.Count() != 3 {
		t.Errorf("cw.Count() = %d, want 3", cw.Count())
	}
	ioutil.FreeCountingWriter(cw)

	cw = ioutil.GetCountingWriter(buf)
	defer ioutil.FreeCountingWriter(cw)
	if cw.Count() != 0 {
		t.Errorf("reused cw.Count() = %d, want 0", cw.Count())
	}
}
