package query_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/gourl/internal/testutil/querymock"
	"github.com/ghettovoice/gourl/query"
)

func TestParams_Set(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		key   string
		value string
		want  string
	}{
		{"replace first remove rest", "a=1&b=2&a=3&c=4&a=5", "a", "x", "a=x&b=2&c=4"},
		{"append missing", "a=1", "b", "2", "a=1&b=2"},
		{"empty list", "", "a", "", "a="},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			p := query.Parse(c.input)
			p.Set(c.key, c.value)
			if got := p.String(); got != c.want {
				t.Errorf("Params.Set(%q, %q) = %q, want %q", c.key, c.value, got, c.want)
			}
		})
	}
}

func TestParams_Delete(t *testing.T) {
	t.Parallel()

	p := query.Parse("?a=1&b=2&a=3&b=4")
	p.DeleteValue("b", "4")
	if got, want := p.String(), "a=1&b=2&a=3"; got != want {
		t.Errorf("Params.DeleteValue() = %q, want %q", got, want)
	}
	p.Delete("a")
	if got, want := p.String(), "b=2"; got != want {
		t.Errorf("Params.Delete() = %q, want %q", got, want)
	}
	p.Delete("b")
	if got := p.Len(); got != 0 {
		t.Errorf("Params.Len() = %d, want 0", got)
	}
}

func TestParams_Sort(t *testing.T) {
	t.Parallel()

	p := query.FromPairs(
		query.Pair{"�", "a"},
		query.Pair{"\U0001F600", "b"},
		query.Pair{"z", "1"},
		query.Pair{"a", "2"},
		query.Pair{"z", "0"},
	)
	p.Sort()

	want := []query.Pair{
		{"a", "2"},
		{"z", "1"},
		{"z", "0"},
		{"\U0001F600", "b"},
		{"�", "a"},
	}
	if diff := cmp.Diff(p.Pairs(), want); diff != "" {
		t.Errorf("Params.Sort() = %+v, want %+v\ndiff (-got +want):\n%v", p.Pairs(), want, diff)
	}
}

func TestParams_Readers(t *testing.T) {
	t.Parallel()

	p := query.Parse("a=1&b=2&a=3")

	if v, ok := p.Get("a"); !ok || v != "1" {
		t.Errorf("Params.Get(\"a\") = (%q, %v), want (\"1\", true)", v, ok)
	}
	if v, ok := p.Get("c"); ok || v != "" {
		t.Errorf("Params.Get(\"c\") = (%q, %v), want (\"\", false)", v, ok)
	}
	if diff := cmp.Diff(p.GetAll("a"), []string{"1", "3"}); diff != "" {
		t.Errorf("Params.GetAll(\"a\") diff (-got +want):\n%v", diff)
	}
	if p.GetAll("c") != nil {
		t.Errorf("Params.GetAll(\"c\") = %v, want nil", p.GetAll("c"))
	}
	if !p.Has("b") || p.Has("c") {
		t.Error("Params.Has() mismatch")
	}
	if !p.HasValue("a", "3") || p.HasValue("a", "2") {
		t.Error("Params.HasValue() mismatch")
	}
	if diff := cmp.Diff(slices.Collect(p.Keys()), []string{"a", "b", "a"}); diff != "" {
		t.Errorf("Params.Keys() diff (-got +want):\n%v", diff)
	}
	if diff := cmp.Diff(slices.Collect(p.Values()), []string{"1", "2", "3"}); diff != "" {
		t.Errorf("Params.Values() diff (-got +want):\n%v", diff)
	}
}

func TestParams_All_Live(t *testing.T) {
	t.Parallel()

	t.Run("append during iteration", func(t *testing.T) {
		t.Parallel()

		p := query.Parse("a=1&b=2")
		var names []string
		for k := range p.All() {
			if k == "a" {
				p.Append("c", "3")
			}
			names = append(names, k)
		}
		if diff := cmp.Diff(names, []string{"a", "b", "c"}); diff != "" {
			t.Errorf("Params.All() diff (-got +want):\n%v", diff)
		}
	})

	t.Run("delete during iteration", func(t *testing.T) {
		t.Parallel()

		p := query.Parse("a=1&b=2&c=3")
		var names []string
		for k := range p.All() {
			if k == "a" {
				p.Delete("a")
			}
			names = append(names, k)
		}
		if diff := cmp.Diff(names, []string{"a", "c"}); diff != "" {
			t.Errorf("Params.All() diff (-got +want):\n%v", diff)
		}
	})

	t.Run("break", func(t *testing.T) {
		t.Parallel()

		p := query.Parse("a=1&b=2&c=3")
		var n int
		for range p.All() {
			n++
			break
		}
		if n != 1 {
			t.Errorf("Params.All() visited %d pairs after break, want 1", n)
		}
	})
}

func TestParams_Bind(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upd := querymock.NewMockUpdater(ctrl)
	gomock.InOrder(
		upd.EXPECT().UpdateQuery("a=1"),
		upd.EXPECT().UpdateQuery("a=1&b=x+y"),
		upd.EXPECT().UpdateQuery("b=x+y"),
		upd.EXPECT().UpdateQuery("r=2"),
		upd.EXPECT().UpdateQuery("r="),
		upd.EXPECT().UpdateQuery(""),
		upd.EXPECT().UpdateQuery("z=1"),
	)

	p := query.Parse("")
	p.Bind(upd)
	p.Append("a", "1")
	p.Append("b", "x y")
	p.Delete("a")
	p.Replace("q=1&r=2")
	p.DeleteValue("q", "1")
	p.Set("r", "")
	p.Delete("r")
	p.Bind(nil)
	p.Append("x", "1")
	p.Bind(upd)
	if err := p.UnmarshalText([]byte("?z=1")); err != nil {
		t.Fatalf("Params.UnmarshalText() error = %v, want nil", err)
	}
}

func TestParams_Bind_Func(t *testing.T) {
	t.Parallel()

	var got []string
	p := query.Parse("a=1")
	p.Bind(query.UpdaterFunc(func(s string) { got = append(got, s) }))
	p.Sort()
	p.Set("a", "2")

	if diff := cmp.Diff(got, []string{"a=1", "a=2"}); diff != "" {
		t.Errorf("updater calls diff (-got +want):\n%v", diff)
	}
}

func TestParams_Clone(t *testing.T) {
	t.Parallel()

	var calls int
	p := query.Parse("a=1")
	p.Bind(query.UpdaterFunc(func(string) { calls++ }))

	c := p.Clone()
	c.Append("b", "2")
	if calls != 0 {
		t.Errorf("clone notified the original updater %d times, want 0", calls)
	}
	if got, want := p.String(), "a=1"; got != want {
		t.Errorf("original = %q, want %q", got, want)
	}
	if p.Equal(c) {
		t.Error("Params.Equal(clone) = true after change, want false")
	}
	c.Delete("b")
	if !p.Equal(c) {
		t.Error("Params.Equal(clone) = false, want true")
	}
	if p.Equal("a=1") {
		t.Error("Params.Equal(string) = true, want false")
	}
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	p := query.FromValues(map[string][]string{"b": {"1", "2"}, "a": {"3"}})
	if got, want := p.String(), "a=3&b=1&b=2"; got != want {
		t.Errorf("query.FromValues() = %q, want %q", got, want)
	}
}

func TestParams_Format(t *testing.T) {
	t.Parallel()

	p := query.Parse("a=1&b=x y")
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "a=1&b=x+y"},
		{"%q", `"a=1&b=x+y"`},
		{"%v", "[{a 1} {b x y}]"},
	}
	for _, c := range cases {
		if got := fmt.Sprintf(c.format, p); got != c.want {
			t.Errorf("fmt.Sprintf(%q, params) = %q, want %q", c.format, got, c.want)
		}
	}
}
