package query

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Params is an ordered list of name-value pairs, duplicate names are allowed.
//
// A Params bound to an [Updater] reports its serialization after every change made
// by [Params.Append], [Params.Set], [Params.Delete], [Params.DeleteValue] and [Params.Sort].
// The zero value is an empty unbound list ready to use.
//
// Params is not safe for concurrent use.
type Params struct {
	pairs   []Pair
	updater Updater
}

// Parse parses s as a query string, a leading '?' is ignored.
func Parse(s string) *Params {
	return &Params{pairs: Decode(strings.TrimPrefix(s, "?"))}
}

// FromPairs returns a list holding a copy of pairs.
func FromPairs(pairs ...Pair) *Params {
	return &Params{pairs: slices.Clone(pairs)}
}

// FromValues returns a list built from a multi-value map.
// Names are sorted, values of one name keep their order.
func FromValues(vals map[string][]string) *Params {
	p := &Params{}
	for _, k := range slices.Sorted(maps.Keys(vals)) {
		for _, v := range vals[k] {
			p.pairs = append(p.pairs, Pair{k, v})
		}
	}
	return p
}

// Bind makes p report changes to u. A nil u unbinds the list.
func (p *Params) Bind(u Updater) { p.updater = u }

// Replace replaces all pairs with the ones parsed from query.
// The bound [Updater] is not notified, this is how the owner of the query pushes it in.
func (p *Params) Replace(query string) { p.pairs = Decode(query) }

func (p *Params) update() {
	if p.updater != nil {
		p.updater.UpdateQuery(p.String())
	}
}

// Append adds a pair to the end of the list.
func (p *Params) Append(name, value string) {
	p.pairs = append(p.pairs, Pair{name, value})
	p.update()
}

// Set replaces the value of the first pair with the given name and removes all others with it.
// If there is no such pair, a new one is appended.
func (p *Params) Set(name, value string) {
	i := slices.IndexFunc(p.pairs, func(pr Pair) bool { return pr.Name == name })
	if i < 0 {
		p.pairs = append(p.pairs, Pair{name, value})
	} else {
		p.pairs[i].Value = value
		rest := slices.DeleteFunc(p.pairs[i+1:], func(pr Pair) bool { return pr.Name == name })
		p.pairs = p.pairs[:i+1+len(rest)]
	}
	p.update()
}

// Delete removes all pairs with the given name.
func (p *Params) Delete(name string) {
	p.pairs = slices.DeleteFunc(p.pairs, func(pr Pair) bool { return pr.Name == name })
	p.update()
}

// DeleteValue removes all pairs with the given name and value.
func (p *Params) DeleteValue(name, value string) {
	p.pairs = slices.DeleteFunc(p.pairs, func(pr Pair) bool { return pr.Name == name && pr.Value == value })
	p.update()
}

// Sort sorts pairs by name comparing UTF-16 code units, the order of pairs with equal names is kept.
func (p *Params) Sort() {
	slices.SortStableFunc(p.pairs, func(a, b Pair) int { return compareUTF16(a.Name, b.Name) })
	p.update()
}

func compareUTF16(a, b string) int {
	if a == b {
		return 0
	}
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// Get returns the value of the first pair with the given name.
func (p *Params) Get(name string) (string, bool) {
	for _, pr := range p.pairs {
		if pr.Name == name {
			return pr.Value, true
		}
	}
	return "", false
}

// GetAll returns values of all pairs with the given name in list order.
func (p *Params) GetAll(name string) []string {
	var vals []string
	for _, pr := range p.pairs {
		if pr.Name == name {
			vals = append(vals, pr.Value)
		}
	}
	return vals
}

func (p *Params) Has(name string) bool {
	return slices.ContainsFunc(p.pairs, func(pr Pair) bool { return pr.Name == name })
}

func (p *Params) HasValue(name, value string) bool {
	return slices.Contains(p.pairs, Pair{name, value})
}

// Len returns the number of pairs.
func (p *Params) Len() int { return len(p.pairs) }

// Pairs returns a copy of the pairs.
func (p *Params) Pairs() []Pair { return slices.Clone(p.pairs) }

// All iterates over pairs by position. Changes made during iteration are visible to it:
// appended pairs are visited, a deletion before the current position skips a pair.
func (p *Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i := 0; i < len(p.pairs); i++ {
			if !yield(p.pairs[i].Name, p.pairs[i].Value) {
				return
			}
		}
	}
}

// Keys iterates over pair names like [Params.All].
func (p *Params) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range p.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over pair values like [Params.All].
func (p *Params) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range p.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns an unbound copy of the list.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	return &Params{pairs: slices.Clone(p.pairs)}
}

// Equal reports whether both lists hold the same pairs in the same order.
func (p *Params) Equal(val any) bool {
	var other *Params
	switch v := val.(type) {
	case Params:
		other = &v
	case *Params:
		other = v
	default:
		return false
	}
	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}
	return slices.Equal(p.pairs, other.pairs)
}

// String returns the UTF-8 application/x-www-form-urlencoded serialization without leading '?'.
func (p *Params) String() string {
	if p == nil {
		return ""
	}
	return Encode(p.pairs, nil)
}

// Format implements [fmt.Formatter].
func (p *Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), p.Pairs())
	}
}

// LogValue implements [slog.LogValuer].
func (p *Params) LogValue() slog.Value {
	if p == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, len(p.pairs))
	for _, pr := range p.pairs {
		attrs = append(attrs, slog.String(pr.Name, pr.Value))
	}
	return slog.GroupValue(attrs...)
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Params) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. The bound [Updater] is kept and notified.
func (p *Params) UnmarshalText(text []byte) error {
	p.pairs = Decode(strings.TrimPrefix(string(text), "?"))
	p.update()
	return nil
}
