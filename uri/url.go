package uri

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/log"
	"github.com/ghettovoice/gourl/internal/types"
	"github.com/ghettovoice/gourl/query"
)

var (
	_ types.Cloneable[*URL] = (*URL)(nil)
	_ types.Equalable       = (*URL)(nil)
)

// URL is a mutable URL with component getters and setters, and a query parameters list
// kept in sync with its query.
//
// Setters never fail loudly: input that can not be applied leaves the URL unchanged.
// Only [URL.SetHref] reports an error, because it replaces the whole URL.
//
// URL is not safe for concurrent use.
type URL struct {
	rec    *Record
	params *query.Params
}

// Parse parses input as an absolute URL.
func Parse(input string) (*URL, error) {
	rec, err := BasicParse(input, nil, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return newURL(rec), nil
}

// ParseRef parses input as a URL reference resolved against base.
// The base itself must be an absolute URL.
func ParseRef(input, base string) (*URL, error) {
	b, err := BasicParse(base, nil, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	rec, err := BasicParse(input, b, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return newURL(rec), nil
}

// CanParse reports whether input can be parsed, resolving it against base.
// An empty base means no base.
func CanParse(input, base string) bool {
	var b *Record
	if base != "" {
		var err error
		if b, err = BasicParse(base, nil, nil); err != nil {
			return false
		}
	}
	_, err := BasicParse(input, b, nil)
	return err == nil
}

// FromRecord returns a URL holding a copy of rec.
func FromRecord(rec *Record) *URL {
	if rec == nil {
		rec = new(Record)
	}
	return newURL(rec.Clone())
}

func newURL(rec *Record) *URL {
	u := &URL{rec: rec, params: new(query.Params)}
	if rec.hasQuery {
		u.params.Replace(rec.query)
	}
	u.params.Bind(query.UpdaterFunc(u.updateQuery))
	return u
}

func (u *URL) record() *Record {
	if u == nil || u.rec == nil {
		return new(Record)
	}
	return u.rec
}

func (u *URL) lazyInit() {
	if u.rec == nil {
		u.rec = new(Record)
	}
	if u.params == nil {
		u.params = new(query.Params)
		u.params.Bind(query.UpdaterFunc(u.updateQuery))
	}
}

// updateQuery receives the serialized parameters list.
func (u *URL) updateQuery(serialized string) {
	if serialized == "" {
		u.rec.query, u.rec.hasQuery = "", false
		u.rec.stripTrailingSpacesFromOpaquePath()
		return
	}
	u.rec.query, u.rec.hasQuery = serialized, true
}

// override applies a state override parse, failures are logged and dropped.
func (u *URL) override(input string, state State) {
	if err := u.rec.ParseOverride(input, state, nil); err != nil {
		log.Default().Debug("URL component is not changed",
			"url", log.FmtValue(u.rec, false), "state", state.String(), "input", input, "error", err)
	}
}

// Record returns a copy of the underlying URL record.
func (u *URL) Record() *Record { return u.record().Clone() }

// SearchParams returns the query parameters list bound to the URL.
// Changes to the list are written back to the URL query.
func (u *URL) SearchParams() *query.Params {
	u.lazyInit()
	return u.params
}

// Origin returns the origin of the URL.
func (u *URL) Origin() Origin { return u.record().Origin() }

// Href returns the URL serialization.
func (u *URL) Href() string { return u.record().String() }

// SetHref replaces the whole URL with the one parsed from s.
// On failure the URL is not changed.
func (u *URL) SetHref(s string) error {
	rec, err := BasicParse(s, nil, nil)
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.lazyInit()
	u.rec = rec
	u.params.Replace(rec.query)
	return nil
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string { return u.record().scheme + ":" }

// SetProtocol changes the scheme. A trailing ':' and anything after it is ignored.
// Switching between special and non-special schemes is not allowed.
func (u *URL) SetProtocol(s string) {
	u.lazyInit()
	u.override(s+":", StateSchemeStart)
}

func (u *URL) Username() string { return u.record().username }

// SetUsername sets the username, it is ignored for URLs that can not have credentials.
func (u *URL) SetUsername(s string) {
	u.lazyInit()
	if u.rec.CannotHaveUsernamePasswordPort() {
		return
	}
	u.rec.username = grammar.Encode(s, grammar.UserinfoSet)
}

func (u *URL) Password() string { return u.record().password }

// SetPassword sets the password, it is ignored for URLs that can not have credentials.
func (u *URL) SetPassword(s string) {
	u.lazyInit()
	if u.rec.CannotHaveUsernamePasswordPort() {
		return
	}
	u.rec.password = grammar.Encode(s, grammar.UserinfoSet)
}

// Host returns the serialized host and port.
func (u *URL) Host() string {
	rec := u.record()
	if rec.host.IsZero() {
		return ""
	}
	if !rec.hasPort {
		return rec.host.String()
	}
	return rec.host.String() + ":" + strconv.Itoa(int(rec.port))
}

// SetHost sets the host and optionally the port.
func (u *URL) SetHost(s string) {
	u.lazyInit()
	if u.rec.opaque {
		return
	}
	u.override(s, StateHost)
}

// Hostname returns the serialized host without the port.
func (u *URL) Hostname() string {
	rec := u.record()
	if rec.host.IsZero() {
		return ""
	}
	return rec.host.String()
}

// SetHostname sets the host, input with a port is rejected.
func (u *URL) SetHostname(s string) {
	u.lazyInit()
	if u.rec.opaque {
		return
	}
	u.override(s, StateHostname)
}

// Port returns the port in decimal or an empty string if the URL has no port.
func (u *URL) Port() string {
	rec := u.record()
	if !rec.hasPort {
		return ""
	}
	return strconv.Itoa(int(rec.port))
}

// SetPort sets the port, an empty string removes it.
// Digits are taken up to the first non-digit code point.
func (u *URL) SetPort(s string) {
	u.lazyInit()
	if u.rec.CannotHaveUsernamePasswordPort() {
		return
	}
	if s == "" {
		u.rec.port, u.rec.hasPort = 0, false
		return
	}
	u.override(s, StatePort)
}

// Pathname returns the serialized path.
func (u *URL) Pathname() string { return u.record().PathString() }

// SetPathname replaces the path. It is ignored for URLs with an opaque path.
func (u *URL) SetPathname(s string) {
	u.lazyInit()
	if u.rec.opaque {
		return
	}
	rec := u.rec.Clone()
	rec.path = rec.path[:0]
	if err := rec.ParseOverride(s, StatePathStart, nil); err != nil {
		log.Default().Debug("URL path is not changed", "input", s, "error", err)
		return
	}
	u.rec = rec
}

// Search returns the query with a leading '?', or an empty string for an absent or empty query.
func (u *URL) Search() string {
	rec := u.record()
	if rec.query == "" {
		return ""
	}
	return "?" + rec.query
}

// SetSearch replaces the query, a leading '?' is ignored.
// An empty string removes the query.
func (u *URL) SetSearch(s string) {
	u.lazyInit()
	if s == "" {
		u.rec.query, u.rec.hasQuery = "", false
		u.params.Replace("")
		u.rec.stripTrailingSpacesFromOpaquePath()
		return
	}

	s = strings.TrimPrefix(s, "?")
	rec := u.rec.Clone()
	rec.query, rec.hasQuery = "", true
	if err := rec.ParseOverride(s, StateQuery, nil); err != nil {
		log.Default().Debug("URL query is not changed", "input", s, "error", err)
		return
	}
	u.rec = rec
	u.params.Replace(s)
}

// Hash returns the fragment with a leading '#', or an empty string for an absent or empty fragment.
func (u *URL) Hash() string {
	rec := u.record()
	if rec.fragment == "" {
		return ""
	}
	return "#" + rec.fragment
}

// SetHash replaces the fragment, a leading '#' is ignored.
// An empty string removes the fragment.
func (u *URL) SetHash(s string) {
	u.lazyInit()
	if s == "" {
		u.rec.fragment, u.rec.hasFragment = "", false
		u.rec.stripTrailingSpacesFromOpaquePath()
		return
	}

	rec := u.rec.Clone()
	rec.fragment, rec.hasFragment = "", true
	if err := rec.ParseOverride(strings.TrimPrefix(s, "#"), StateFragment, nil); err != nil {
		log.Default().Debug("URL fragment is not changed", "input", s, "error", err)
		return
	}
	u.rec = rec
}

// Clone returns a deep copy of the URL with its own query parameters list.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	return newURL(u.record().Clone())
}

// Equal reports whether both URLs have the same serialization.
// It accepts a *[URL], [Record] or *[Record].
func (u *URL) Equal(val any) bool {
	if u == nil {
		v, ok := val.(*URL)
		return ok && v == nil
	}
	return u.record().Equal(val)
}

// String returns the URL serialization.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.Href()
}

// Format implements [fmt.Formatter].
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), u.record())
	}
}

// LogValue implements [slog.LogValuer].
func (u *URL) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return slog.StringValue(u.String())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The query parameters list returned by [URL.SearchParams] before the call stays bound.
func (u *URL) UnmarshalText(text []byte) error {
	return errtrace.Wrap(u.SetHref(string(text)))
}
