package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/ghettovoice/gourl/query"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  []query.Pair
	}{
		{"empty", "", nil},
		{"single", "a=1", []query.Pair{{"a", "1"}}},
		{"empty sequences skipped", "&a=1&&b=2&", []query.Pair{{"a", "1"}, {"b", "2"}}},
		{"no value", "a&b=", []query.Pair{{"a", ""}, {"b", ""}}},
		{"empty name", "=x", []query.Pair{{"", "x"}}},
		{"plus is space", "c+d=e+f", []query.Pair{{"c d", "e f"}}},
		{"second equals kept", "a=b=c", []query.Pair{{"a", "b=c"}}},
		{"percent-decoded", "%61=%C3%BC%2B", []query.Pair{{"a", "ü+"}}},
		{"bad percent kept", "b=%zz%4", []query.Pair{{"b", "%zz%4"}}},
		{"invalid utf-8 replaced", "x=%FF", []query.Pair{{"x", "�"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := query.Decode(c.input)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("query.Decode(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.input, got, c.want, diff)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	pairs := []query.Pair{{"a b", "ü"}, {"x*-._", "~!'()"}, {"", "="}}
	cases := []struct {
		name string
		enc  string
		want string
	}{
		{"utf-8", "", "a+b=%C3%BC&x*-._=%7E%21%27%28%29&=%3D"},
		{"windows-1252", "windows-1252", "a+b=%FC&x*-._=%7E%21%27%28%29&=%3D"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var got string
			if c.enc == "" {
				got = query.Encode(pairs, nil)
			} else {
				got = query.Encode(pairs, charmap.Windows1252)
			}
			if got != c.want {
				t.Errorf("query.Encode(%+v) = %q, want %q", pairs, got, c.want)
			}
		})
	}
}
