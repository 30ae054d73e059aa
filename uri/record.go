package uri

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/host"
	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/ioutil"
	"github.com/ghettovoice/gourl/internal/types"
	"github.com/ghettovoice/gourl/internal/util"
)

// RenderOptions contains options for rendering URLs.
type RenderOptions = types.RenderOptions

var specialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of ftp, file, http, https, ws, wss.
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// DefaultPort returns the default port of a special scheme.
func DefaultPort(scheme string) (uint16, bool) {
	p, ok := specialSchemes[scheme]
	if !ok || p < 0 {
		return 0, false
	}
	return uint16(p), true
}

var (
	_ types.Renderer           = (*Record)(nil)
	_ types.Cloneable[*Record] = (*Record)(nil)
	_ types.Equalable          = (*Record)(nil)
)

// Record is a parsed URL.
//
// A Record is created by [BasicParse] and changed only through [Record.ParseOverride],
// so all its components are always normalized and percent-encoded.
// The zero value is an empty URL that has no scheme.
type Record struct {
	scheme      string
	username    string
	password    string
	host        host.Host
	port        uint16
	hasPort     bool
	path        []string
	opaque      bool
	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
}

func (r *Record) Scheme() string { return r.scheme }

func (r *Record) Username() string { return r.username }

func (r *Record) Password() string { return r.password }

// Host returns the host, it is zero for URLs without authority.
func (r *Record) Host() host.Host { return r.host }

// Port returns the port. The default port of the scheme is never stored.
func (r *Record) Port() (uint16, bool) { return r.port, r.hasPort }

// Path returns a copy of the path segments.
// For a URL with an opaque path it is a single element slice with the whole path.
func (r *Record) Path() []string { return slices.Clone(r.path) }

// HasOpaquePath reports whether the path is a single opaque string,
// as in "mailto:" or "data:" URLs. Such URLs can not be used as a base.
func (r *Record) HasOpaquePath() bool { return r.opaque }

// Query returns the query without the leading '?'.
func (r *Record) Query() (string, bool) { return r.query, r.hasQuery }

// Fragment returns the fragment without the leading '#'.
func (r *Record) Fragment() (string, bool) { return r.fragment, r.hasFragment }

// IsSpecial reports whether the URL scheme is special.
func (r *Record) IsSpecial() bool { return IsSpecialScheme(r.scheme) }

// IncludesCredentials reports whether the username or password is not empty.
func (r *Record) IncludesCredentials() bool { return r.username != "" || r.password != "" }

// CannotHaveUsernamePasswordPort reports whether the URL has no host, has an empty host
// or is a file URL.
func (r *Record) CannotHaveUsernamePasswordPort() bool {
	return r.host.IsZero() || r.host.IsEmpty() || r.scheme == "file"
}

// PathString returns the serialized path.
func (r *Record) PathString() string {
	if r.opaque {
		if len(r.path) == 0 {
			return ""
		}
		return r.path[0]
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for _, seg := range r.path {
		sb.WriteByte('/')
		sb.WriteString(seg)
	}
	return sb.String()
}

func (r *Record) setPort(port uint16) {
	if def, ok := DefaultPort(r.scheme); ok && def == port {
		r.port, r.hasPort = 0, false
		return
	}
	r.port, r.hasPort = port, true
}

func (r *Record) setOpaquePath(s string) {
	r.path = []string{s}
	r.opaque = true
}

func (r *Record) appendOpaquePath(s string) {
	if !r.opaque || len(r.path) == 0 {
		r.setOpaquePath(s)
		return
	}
	r.path[0] += s
}

func (r *Record) shortenPath() {
	if r.scheme == "file" && len(r.path) == 1 && grammar.IsNormalizedWindowsDriveLetter(r.path[0]) {
		return
	}
	if len(r.path) > 0 {
		r.path = r.path[:len(r.path)-1]
	}
}

// stripTrailingSpacesFromOpaquePath removes spaces left at the end of an opaque path
// once the query and fragment that followed them are gone.
func (r *Record) stripTrailingSpacesFromOpaquePath() {
	if !r.opaque || r.hasFragment || r.hasQuery || len(r.path) == 0 {
		return
	}
	p := r.path[0]
	for len(p) > 0 && p[len(p)-1] == ' ' {
		p = p[:len(p)-1]
	}
	r.path[0] = p
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.path = slices.Clone(r.path)
	return &r2
}

// RenderTo writes the URL serialization to w.
func (r *Record) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if r == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.Print(r.scheme, ":")
	if !r.host.IsZero() {
		cw.Print("//")
		if r.IncludesCredentials() {
			cw.Print(r.username)
			if r.password != "" {
				cw.Print(":", r.password)
			}
			cw.Print("@")
		}
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(r.host.RenderTo(w, opts)) })
		if r.hasPort {
			cw.Print(":", strconv.Itoa(int(r.port)))
		}
	} else if !r.opaque && len(r.path) > 1 && r.path[0] == "" {
		cw.Print("/.")
	}
	cw.Print(r.PathString())
	if r.hasQuery {
		cw.Print("?", r.query)
	}
	if r.hasFragment && !opts.WithoutFragment() {
		cw.Print("#", r.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the URL serialization.
func (r *Record) Render(opts *RenderOptions) string {
	if r == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// Serialize returns the URL serialization, optionally without the fragment.
func (r *Record) Serialize(excludeFragment bool) string {
	if !excludeFragment {
		return r.String()
	}
	return r.Render(&RenderOptions{ExcludeFragment: true})
}

// String returns the URL serialization.
func (r *Record) String() string {
	if r == nil {
		return ""
	}
	return r.Render(nil)
}

// Format implements [fmt.Formatter].
func (r *Record) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			r.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, r.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(r.String()))
		return
	default:
		type hideMethods Record
		type Record hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Record)(r))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (r *Record) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	return slog.StringValue(r.String())
}

// Equal reports whether both URLs have the same serialization.
// It accepts a [Record], *[Record] or *[URL].
func (r *Record) Equal(val any) bool {
	var other *Record
	switch v := val.(type) {
	case Record:
		other = &v
	case *Record:
		other = v
	case *URL:
		if v == nil {
			return false
		}
		other = v.rec
	default:
		return false
	}

	if r == other {
		return true
	} else if r == nil || other == nil {
		return false
	}
	return r.String() == other.String()
}

// EqualExcludeFragment is like [Record.Equal], but ignores fragments.
func (r *Record) EqualExcludeFragment(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Serialize(true) == other.Serialize(true)
}

// MarshalText implements [encoding.TextMarshaler].
func (r *Record) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Record) UnmarshalText(text []byte) error {
	r1, err := BasicParse(string(text), nil, nil)
	if err != nil {
		*r = Record{}
		return errtrace.Wrap(err)
	}
	*r = *r1
	return nil
}
