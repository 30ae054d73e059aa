package host

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/grammar"
)

// Parse parses input as the host of a URL.
// Hosts of special URLs are domains or IP addresses, all other URLs get opaque hosts.
func Parse(input string, isSpecial bool) (Host, error) {
	return errtrace.Wrap2(ParseReport(input, isSpecial, nil))
}

// ParseReport is like [Parse], but also calls report for every non-fatal validation error.
// The report callback may be nil.
func ParseReport(input string, isSpecial bool, report func(ValidationError)) (Host, error) {
	if report == nil {
		report = func(ValidationError) {}
	}

	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, errtrace.Wrap(newHostErr(grammar.IPv6Unclosed, input))
		}
		addr, err := ParseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, errtrace.Wrap(err)
		}
		return IPv6(addr), nil
	}

	if !isSpecial {
		return errtrace.Wrap2(parseOpaque(input, report))
	}

	if input == "" {
		return Host{}, errtrace.Wrap(newHostErr(grammar.HostMissing, input))
	}

	domain := grammar.DecodeUTF8(grammar.PercentDecode(input))
	ascii, err := ToASCII(domain)
	if err != nil {
		return Host{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, grammar.DomainToASCII, "%q: %v", input, err))
	}
	if strings.IndexFunc(ascii, grammar.IsForbiddenDomainCodePoint) >= 0 {
		return Host{}, errtrace.Wrap(newHostErr(grammar.DomainInvalidCodePoint, input))
	}

	addr, ok, err := parseIPv4(ascii, report)
	if err != nil {
		return Host{}, errtrace.Wrap(err)
	}
	if ok {
		return IPv4(addr), nil
	}
	return Domain(ascii), nil
}

// ParseOpaque parses input as an opaque host of a non-special URL.
func ParseOpaque(input string) (Host, error) {
	return errtrace.Wrap2(parseOpaque(input, func(ValidationError) {}))
}

func parseOpaque(input string, report func(ValidationError)) (Host, error) {
	if input == "" {
		return Empty(), nil
	}
	if strings.IndexFunc(input, grammar.IsForbiddenHostCodePoint) >= 0 {
		return Host{}, errtrace.Wrap(newHostErr(grammar.HostInvalidCodePoint, input))
	}
	for i, r := range input {
		if r != '%' && !grammar.IsURLCodePoint(r) {
			report(grammar.InvalidURLUnit)
			continue
		}
		if r == '%' && (i+2 >= len(input) || !grammar.IsASCIIHex(rune(input[i+1])) || !grammar.IsASCIIHex(rune(input[i+2]))) {
			report(grammar.InvalidURLUnit)
		}
	}
	return Opaque(grammar.Encode(input, grammar.C0ControlSet)), nil
}

func newHostErr(code ValidationError, input string) error {
	return errorutil.NewWrapperError(ErrInvalidHost, code, "%q", input) //errtrace:skip
}
