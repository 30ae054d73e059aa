package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/query"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "HTTP://Example.com:80/a?b=1&c=x+y", "http://a.com/a b")
	require.NoError(t, err)

	var reports []urlReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "http://example.com/a?b=1&c=x+y", reports[0].Href)
	assert.Equal(t, "example.com", reports[0].Host)
	assert.Equal(t, "http://example.com", reports[0].Origin)
	assert.Equal(t, []query.Pair{{Name: "b", Value: "1"}, {Name: "c", Value: "x y"}}, reports[0].Params)
	assert.Empty(t, reports[0].Warnings)

	assert.Equal(t, "http://a.com/a%20b", reports[1].Href)
	assert.Contains(t, reports[1].Warnings, "invalid-URL-unit")
}

func TestParse_JSONWithBase(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--format", "json", "--base", "http://a.com/x/y", "../z?q#f")
	require.NoError(t, err)

	var reports []urlReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "../z?q#f", reports[0].Input)
	assert.Equal(t, "http://a.com/z?q#f", reports[0].Href)
	assert.Equal(t, "/z", reports[0].Pathname)
	assert.Equal(t, "#f", reports[0].Hash)
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"encoding", []string{"--encoding", "windows-1252", "http://a.com/?q=ü"}, "http://a.com/?q=%FC\n"},
		{"unicode host", []string{"--unicode", "http://xn--bcher-kva.de/"}, "http://bücher.de/\n"},
		{"several", []string{"http://a.com", "sc:x"}, "http://a.com/\nsc:x\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := execute(t, append([]string{"--format", "text"}, c.args...)...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestParse_Failure(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--format", "text", "http://a.com", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 URLs failed")
	assert.Contains(t, out, "http://a.com/\n")
	assert.Contains(t, out, "abc\terror: invalid URL")

	out, _, err = execute(t, "--format", "json", "abc", "http://[::1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 URLs failed to parse:\n  - ")

	var reports []urlReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "missing-scheme-non-relative-URL", reports[0].Code)
	assert.Equal(t, "IPv6-unclosed", reports[1].Code)
	assert.Empty(t, reports[1].Href)
}

func TestParse_DebugLog(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "--log-level", "debug", "http://a.com/a b")
	require.NoError(t, err)
	assert.Contains(t, stderr, "invalid-URL-unit")

	_, stderr, err = execute(t, "http://a.com/a b")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "invalid-URL-unit")
}

func TestParse_InvalidFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"format", []string{"--format", "xml", "http://a.com"}},
		{"encoding", []string{"--encoding", "no-such-encoding", "http://a.com"}},
		{"log level", []string{"--log-level", "loud", "http://a.com"}},
		{"base", []string{"--base", "not a url", "x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, c.args...)
			require.ErrorIs(t, err, errorutil.ErrInvalidArgument)
		})
	}

	_, _, err := execute(t)
	require.Error(t, err)
}

func TestDomain(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "domain", "--format", "json", "Bücher.de", "a..b", "[::1]")
	require.NoError(t, err)

	var reports []domainReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 3)

	assert.Equal(t, domainReport{Input: "Bücher.de", ASCII: "xn--bcher-kva.de", Unicode: "bücher.de", Valid: true}, reports[0])
	assert.False(t, reports[1].Valid)
	assert.Equal(t, domainReport{Input: "[::1]"}, reports[2])
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "query", "--format", "json", "--sort", "?b=2&a=1&a=%C3%BC")
		require.NoError(t, err)

		var r queryReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, []query.Pair{{Name: "a", Value: "1"}, {Name: "a", Value: "ü"}, {Name: "b", Value: "2"}}, r.Pairs)
		assert.Equal(t, "a=1&a=%C3%BC&b=2", r.Serialized)
	})

	t.Run("encoding", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "query", "--format", "yaml", "--encoding", "windows-1252", "a=%C3%BC")
		require.NoError(t, err)

		var r queryReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &r))
		assert.Equal(t, "a=%FC", r.Serialized)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "query", "--format", "text", "a=1&b=x+y")
		require.NoError(t, err)
		assert.Equal(t, "a\t1\nb\tx y\n", out)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "query", "--format", "json", "")
		require.NoError(t, err)
		assert.JSONEq(t, `{"pairs":[],"serialized":""}`, out)
	})
}
