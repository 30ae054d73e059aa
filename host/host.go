// Package host implements the host forms of a URL: domains, IPv4 and IPv6 addresses,
// opaque hosts and the empty host, together with their parsers and serializers.
package host

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/ioutil"
	"github.com/ghettovoice/gourl/internal/types"
	"github.com/ghettovoice/gourl/internal/util"
)

// ErrInvalidHost is returned when the input can not be parsed as a host.
// Returned errors also match the [ValidationError] that caused the failure.
const ErrInvalidHost errorutil.Error = "invalid host"

// ValidationError is a URL Standard validation error code.
type ValidationError = grammar.ValidationError

// RenderOptions contains options for rendering hosts.
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer  = Host{}
	_ types.Equalable = Host{}
)

// Kind is the form of a [Host].
type Kind uint8

const (
	KindNone   Kind = iota // no host
	KindDomain             // ASCII domain
	KindIPv4               // IPv4 address
	KindIPv6               // IPv6 address
	KindOpaque             // opaque host of a non-special URL
	KindEmpty              // empty host
)

var kindNames = [...]string{
	KindNone:   "none",
	KindDomain: "domain",
	KindIPv4:   "ipv4",
	KindIPv6:   "ipv6",
	KindOpaque: "opaque",
	KindEmpty:  "empty",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Host is a URL host. The zero value is no host.
type Host struct {
	kind Kind
	name string
	ipv4 uint32
	ipv6 [8]uint16
}

// Domain returns a domain host. The name is expected to be already converted to ASCII.
func Domain(name string) Host { return Host{kind: KindDomain, name: name} }

// IPv4 returns an IPv4 address host.
func IPv4(addr uint32) Host { return Host{kind: KindIPv4, ipv4: addr} }

// IPv6 returns an IPv6 address host.
func IPv6(addr [8]uint16) Host { return Host{kind: KindIPv6, ipv6: addr} }

// Opaque returns an opaque host, the value is expected to be already percent-encoded.
func Opaque(s string) Host { return Host{kind: KindOpaque, name: s} }

// Empty returns the empty host.
func Empty() Host { return Host{kind: KindEmpty} }

// FromAddr converts a [netip.Addr] to a host. Zones are dropped.
func FromAddr(addr netip.Addr) Host {
	switch {
	case addr.Is4():
		b := addr.As4()
		return IPv4(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	case addr.Is6():
		b := addr.As16()
		var pieces [8]uint16
		for i := range pieces {
			pieces[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
		}
		return IPv6(pieces)
	}
	return Host{}
}

func (h Host) Kind() Kind { return h.kind }

// IsZero reports whether there is no host.
func (h Host) IsZero() bool { return h.kind == KindNone }

// IsEmpty reports whether the host is the empty host.
func (h Host) IsEmpty() bool { return h.kind == KindEmpty }

// Name returns the domain or opaque host string, empty for other kinds.
func (h Host) Name() string {
	if h.kind == KindDomain || h.kind == KindOpaque {
		return h.name
	}
	return ""
}

// IPv4Addr returns the IPv4 address if the host is one.
func (h Host) IPv4Addr() (uint32, bool) { return h.ipv4, h.kind == KindIPv4 }

// IPv6Addr returns the IPv6 address pieces if the host is one.
func (h Host) IPv6Addr() ([8]uint16, bool) { return h.ipv6, h.kind == KindIPv6 }

// Addr returns the host as [netip.Addr] if it is an IP address.
func (h Host) Addr() (netip.Addr, bool) {
	switch h.kind {
	case KindIPv4:
		return netip.AddrFrom4([4]byte{byte(h.ipv4 >> 24), byte(h.ipv4 >> 16), byte(h.ipv4 >> 8), byte(h.ipv4)}), true
	case KindIPv6:
		var b [16]byte
		for i, p := range h.ipv6 {
			b[2*i], b[2*i+1] = byte(p>>8), byte(p)
		}
		return netip.AddrFrom16(b), true
	}
	return netip.Addr{}, false
}

// RenderTo writes the host serialization to w.
// With [RenderOptions.UnicodeHost] domains are written in Unicode form.
func (h Host) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	switch h.kind {
	case KindDomain:
		if opts.WithUnicodeHost() {
			if s, uerr := ToUnicode(h.name); uerr == nil {
				cw.Print(s)
				break
			}
		}
		cw.Print(h.name)
	case KindOpaque:
		cw.Print(h.name)
	case KindIPv4:
		cw.Print(SerializeIPv4(h.ipv4))
	case KindIPv6:
		cw.Print("[", SerializeIPv6(h.ipv6), "]")
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the host serialization.
func (h Host) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	h.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the host serialization, IPv6 addresses are enclosed in brackets.
func (h Host) String() string {
	switch h.kind {
	case KindNone, KindEmpty:
		return ""
	case KindDomain, KindOpaque:
		return h.name
	}
	return h.Render(nil)
}

// Format implements [fmt.Formatter].
func (h Host) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, h.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(h.String()))
	default:
		type hideMethods Host
		type Host hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Host(h))
	}
}

// LogValue implements [slog.LogValuer].
func (h Host) LogValue() slog.Value {
	if h.kind == KindNone {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("kind", h.kind.String()),
		slog.String("value", h.String()),
	)
}

// Equal reports whether both hosts have the same kind and value.
func (h Host) Equal(val any) bool {
	var other Host
	switch v := val.(type) {
	case Host:
		other = v
	case *Host:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if h.kind != other.kind {
		return false
	}
	switch h.kind {
	case KindDomain, KindOpaque:
		return h.name == other.name
	case KindIPv4:
		return h.ipv4 == other.ipv4
	case KindIPv6:
		return h.ipv6 == other.ipv6
	}
	return true
}

// MarshalText implements [encoding.TextMarshaler].
func (h Host) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The text is parsed as a host of a special URL.
func (h *Host) UnmarshalText(text []byte) error {
	h1, err := Parse(string(text), true)
	if err != nil {
		*h = Host{}
		return errtrace.Wrap(err)
	}
	*h = h1
	return nil
}
