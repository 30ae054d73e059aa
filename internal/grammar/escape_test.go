package grammar_test

import (
	"testing"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/ghettovoice/gourl/internal/grammar"
)

func TestEncodeSet_Contains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		set grammar.EncodeSet
		in  string
		out string
	}{
		{grammar.C0ControlSet, "\x00\x1f\x7fü", ""},
		{grammar.C0ControlSet, "", " \"#<>?`{}'~"},
		{grammar.FragmentSet, " \"<>`", "#?{}'"},
		{grammar.QuerySet, " \"#<>", "'`?{}"},
		{grammar.SpecialQuerySet, " \"#<>'", "`?{}"},
		{grammar.PathSet, " \"#<>?`{}", "'^/:"},
		{grammar.UserinfoSet, "/:;=@[\\]^|", "$%&+,!~"},
		{grammar.ComponentSet, "$%&+,", "!'()~*-._"},
		{grammar.FormSet, "!'()~", "*-._"},
	}

	for _, c := range cases {
		t.Run(c.set.String(), func(t *testing.T) {
			t.Parallel()

			for _, r := range c.in {
				if !c.set.Contains(r) {
					t.Errorf("%s.Contains(%q) = false, want true", c.set, r)
				}
			}
			for _, r := range c.out {
				if c.set.Contains(r) {
					t.Errorf("%s.Contains(%q) = true, want false", c.set, r)
				}
			}
			for _, r := range "azAZ09" {
				if c.set.Contains(r) {
					t.Errorf("%s.Contains(%q) = true, want false", c.set, r)
				}
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		set  grammar.EncodeSet
		want string
	}{
		{"empty", "", grammar.ComponentSet, ""},
		{"nothing to encode", "abc-_.~", grammar.PathSet, "abc-_.~"},
		{"fragment space", "a b", grammar.FragmentSet, "a%20b"},
		{"query keeps quote", "a'b", grammar.QuerySet, "a'b"},
		{"special query quote", "a'b", grammar.SpecialQuerySet, "a%27b"},
		{"path question mark", "/a?b", grammar.PathSet, "/a%3Fb"},
		{"non-ascii", "ü世", grammar.C0ControlSet, "%C3%BC%E4%B8%96"},
		{"userinfo", "user@host:pw", grammar.UserinfoSet, "user%40host%3Apw"},
		{"component", "a+b&c", grammar.ComponentSet, "a%2Bb%26c"},
		{"form", "a~b c", grammar.FormSet, "a%7Eb%20c"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Encode(c.in, c.set), c.want; got != want {
				t.Errorf("grammar.Encode(%q, %s) = %q, want %q", c.in, c.set, got, want)
			}
		})
	}
}

func TestPercentEncodeRune(t *testing.T) {
	t.Parallel()

	for r, want := range map[rune]string{
		' ':     "%20",
		'ü':     "%C3%BC",
		0x1F4A9: "%F0%9F%92%A9",
	} {
		if got := grammar.PercentEncodeRune(r); got != want {
			t.Errorf("grammar.PercentEncodeRune(%q) = %q, want %q", r, got, want)
		}
	}
}

func TestPercentDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"malformed kept", "abc%zz%4", "abc%zz%4"},
		{"trailing percent", "100%", "100%"},
		{"mixed case hex", "%e4%B8%96", "世"},
		{"plus untouched", "a+b%2B", "a+b+"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := string(grammar.PercentDecode(c.in)), c.want; got != want {
				t.Errorf("grammar.PercentDecode(%q) = %q, want %q", c.in, got, want)
			}
			if got, want := string(grammar.PercentDecode([]byte(c.in))), c.want; got != want {
				t.Errorf("grammar.PercentDecode([]byte(%q)) = %q, want %q", c.in, got, want)
			}
		})
	}
}

func TestEncodeAfterEncoding(t *testing.T) {
	t.Parallel()

	win1252, err := htmlindex.Get("windows-1252")
	if err != nil {
		t.Fatalf("htmlindex.Get(windows-1252) error = %v, want nil", err)
	}
	utf16, err := htmlindex.Get("utf-16le")
	if err != nil {
		t.Fatalf("htmlindex.Get(utf-16le) error = %v, want nil", err)
	}

	t.Run("utf-8", func(t *testing.T) {
		t.Parallel()

		got := grammar.EncodeAfterEncoding(nil, "a b~ü", grammar.FormSet, true)
		if want := "a+b%7E%C3%BC"; got != want {
			t.Errorf("grammar.EncodeAfterEncoding(nil) = %q, want %q", got, want)
		}
	})

	t.Run("windows-1252", func(t *testing.T) {
		t.Parallel()

		got := grammar.EncodeAfterEncoding(win1252, "ü€ 世", grammar.QuerySet, false)
		if want := "%FC%80%20%26%2319990%3B"; got != want {
			t.Errorf("grammar.EncodeAfterEncoding(windows-1252) = %q, want %q", got, want)
		}
	})

	t.Run("utf-16 falls back to utf-8", func(t *testing.T) {
		t.Parallel()

		got := grammar.EncodeAfterEncoding(utf16, "ü", grammar.QuerySet, false)
		if want := "%C3%BC"; got != want {
			t.Errorf("grammar.EncodeAfterEncoding(utf-16le) = %q, want %q", got, want)
		}
	})
}
