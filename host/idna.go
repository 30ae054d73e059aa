package host

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// Non-transitional UTS #46 processing as used by the host parser.
// Hyphen placement, DNS lengths and STD3 rules are left unchecked.
var lookupProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.CheckHyphens(false),
	idna.CheckJoiners(true),
	idna.StrictDomainName(false),
	idna.Transitional(false),
	idna.VerifyDNSLength(false),
)

var strictProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.CheckHyphens(true),
	idna.CheckJoiners(true),
	idna.StrictDomainName(true),
	idna.Transitional(false),
	idna.VerifyDNSLength(true),
)

// ToASCII maps domain to its lowercase ASCII form, encoding non-ASCII labels with Punycode.
func ToASCII(domain string) (string, error) {
	return errtrace.Wrap2(lookupProfile.ToASCII(domain))
}

// ToUnicode maps domain to its Unicode form, decoding Punycode labels.
// On error the returned string still holds the best effort result.
func ToUnicode(domain string) (string, error) {
	return errtrace.Wrap2(lookupProfile.ToUnicode(domain))
}

// DomainToASCII returns the ASCII serialization of domain, or an empty string
// if the domain is invalid or is an IP address.
func DomainToASCII(domain string) string {
	h, err := Parse(domain, true)
	if err != nil || h.Kind() != KindDomain {
		return ""
	}
	return h.Name()
}

// DomainToUnicode returns the Unicode serialization of domain, or an empty string
// if the domain is invalid or is an IP address.
func DomainToUnicode(domain string) string {
	ascii := DomainToASCII(domain)
	if ascii == "" {
		return ""
	}
	s, _ := ToUnicode(ascii)
	return s
}

// IsValidDomain reports whether domain is a valid domain name for registration:
// the strict IDNA mapping succeeds, the result has 1 to 253 octets with labels of
// 1 to 63 octets and it maps back to Unicode without errors.
func IsValidDomain(domain string) bool {
	ascii, err := strictProfile.ToASCII(domain)
	if err != nil {
		return false
	}
	if _, ok := dns.IsDomainName(ascii); !ok || len(strings.TrimSuffix(ascii, ".")) > 253 {
		return false
	}
	for label := range strings.SplitSeq(strings.TrimSuffix(ascii, "."), ".") {
		if label == "" {
			return false
		}
	}
	_, err = strictProfile.ToUnicode(ascii)
	return err == nil
}
