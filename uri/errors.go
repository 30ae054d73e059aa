package uri

import (
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/grammar"
)

// ErrInvalidURL is returned when the input can not be parsed as a URL.
// Returned errors also match the [ValidationError] that caused the failure
// and, for host failures, [host.ErrInvalidHost].
const ErrInvalidURL errorutil.Error = "invalid URL"

// ValidationError is a URL Standard validation error code.
// Most of them are only reported through [ParseOptions.OnValidationError],
// the rest abort parsing and are wrapped into the returned error.
type ValidationError = grammar.ValidationError

// Validation errors reported by the URL parser.
const (
	InvalidURLUnit                     = grammar.InvalidURLUnit
	SpecialSchemeMissingFollowingSlash = grammar.SpecialSchemeMissingFollowingSlash
	MissingSchemeNonRelativeURL        = grammar.MissingSchemeNonRelativeURL
	InvalidReverseSolidus              = grammar.InvalidReverseSolidus
	InvalidCredentials                 = grammar.InvalidCredentials
	HostMissing                        = grammar.HostMissing
	PortOutOfRange                     = grammar.PortOutOfRange
	PortInvalid                        = grammar.PortInvalid
	FileInvalidWindowsDriveLetter      = grammar.FileInvalidWindowsDriveLetter
	FileInvalidWindowsDriveLetterHost  = grammar.FileInvalidWindowsDriveLetterHost
	InvalidSchemeStart                 = grammar.InvalidSchemeStart
	LeadingTrailingC0OrSpace           = grammar.LeadingTrailingC0OrSpace
	TabOrNewline                       = grammar.TabOrNewline
)

// Validation errors reported by the host parser.
const (
	DomainToASCII              = grammar.DomainToASCII
	DomainInvalidCodePoint     = grammar.DomainInvalidCodePoint
	HostInvalidCodePoint       = grammar.HostInvalidCodePoint
	IPv4EmptyPart              = grammar.IPv4EmptyPart
	IPv4TooManyParts           = grammar.IPv4TooManyParts
	IPv4NonDecimalPart         = grammar.IPv4NonDecimalPart
	IPv4OutOfRangePart         = grammar.IPv4OutOfRangePart
	IPv6Unclosed               = grammar.IPv6Unclosed
	IPv6InvalidCompress        = grammar.IPv6InvalidCompress
	IPv6TooManyPieces          = grammar.IPv6TooManyPieces
	IPv6MultipleCompress       = grammar.IPv6MultipleCompress
	IPv6InvalidCodePoint       = grammar.IPv6InvalidCodePoint
	IPv6TooFewPieces           = grammar.IPv6TooFewPieces
	IPv4InIPv6TooManyPieces    = grammar.IPv4InIPv6TooManyPieces
	IPv4InIPv6InvalidCodePoint = grammar.IPv4InIPv6InvalidCodePoint
	IPv4InIPv6OutOfRangePart   = grammar.IPv4InIPv6OutOfRangePart
	IPv4InIPv6TooFewParts      = grammar.IPv4InIPv6TooFewParts
)

func newURLErr(code ValidationError, input string) error {
	return errorutil.NewWrapperError(ErrInvalidURL, code, "%q", input) //errtrace:skip
}
