package uri

import (
	"log/slog"
	"strconv"

	"github.com/ghettovoice/gourl/host"
)

// Origin is the origin of a URL: either a tuple of scheme, host and port,
// or an opaque origin. The zero value is an opaque origin.
type Origin struct {
	scheme  string
	host    host.Host
	port    uint16
	hasPort bool
}

// TupleOrigin returns a tuple origin.
func TupleOrigin(scheme string, h host.Host, port uint16, hasPort bool) Origin {
	o := Origin{scheme: scheme, host: h}
	if hasPort {
		if def, ok := DefaultPort(scheme); !ok || def != port {
			o.port, o.hasPort = port, true
		}
	}
	return o
}

// IsOpaque reports whether the origin is opaque.
func (o Origin) IsOpaque() bool { return o.scheme == "" }

func (o Origin) Scheme() string { return o.scheme }

func (o Origin) Host() host.Host { return o.host }

// Port returns the port, which is never the default port of the scheme.
func (o Origin) Port() (uint16, bool) { return o.port, o.hasPort }

// String returns the ASCII serialization of the origin, "null" for opaque origins.
func (o Origin) String() string {
	if o.IsOpaque() {
		return "null"
	}
	s := o.scheme + "://" + o.host.String()
	if o.hasPort {
		s += ":" + strconv.Itoa(int(o.port))
	}
	return s
}

// Equal reports whether both origins are the same tuple origin.
// An opaque origin is never equal to another origin.
func (o Origin) Equal(val any) bool {
	var other Origin
	switch v := val.(type) {
	case Origin:
		other = v
	case *Origin:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if o.IsOpaque() || other.IsOpaque() {
		return false
	}
	return o.scheme == other.scheme && o.host.Equal(other.host) &&
		o.hasPort == other.hasPort && o.port == other.port
}

// LogValue implements [slog.LogValuer].
func (o Origin) LogValue() slog.Value {
	return slog.StringValue(o.String())
}

// Origin returns the origin of the URL.
//
// URLs with ftp, http, https, ws and wss schemes have tuple origins,
// blob URLs have the origin of the http(s) URL they wrap,
// all other URLs have opaque origins.
func (r *Record) Origin() Origin {
	if r == nil {
		return Origin{}
	}
	switch r.scheme {
	case "blob":
		inner, err := BasicParse(r.PathString(), nil, nil)
		if err != nil {
			return Origin{}
		}
		if inner.scheme == "http" || inner.scheme == "https" {
			return inner.Origin()
		}
		return Origin{}
	case "ftp", "http", "https", "ws", "wss":
		return Origin{scheme: r.scheme, host: r.host, port: r.port, hasPort: r.hasPort}
	}
	return Origin{}
}
