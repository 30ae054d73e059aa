// Package grammar implements the code point classes, percent-encode sets and
// validation error codes of the URL Standard.
package grammar

//go:generate go tool errtrace -w .

// ValidationError is a validation error code as named by the URL Standard.
// Some of them are fatal and abort parsing, the rest are only reported.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func (ValidationError) Grammar() bool { return true }

// Host parsing.
const (
	DomainToASCII          ValidationError = "domain-to-ASCII"
	DomainInvalidCodePoint ValidationError = "domain-invalid-code-point"
	HostInvalidCodePoint   ValidationError = "host-invalid-code-point"

	IPv4EmptyPart        ValidationError = "IPv4-empty-part"
	IPv4TooManyParts     ValidationError = "IPv4-too-many-parts"
	IPv4NonDecimalPart   ValidationError = "IPv4-non-decimal-part"
	IPv4OutOfRangePart   ValidationError = "IPv4-out-of-range-part"
	IPv6Unclosed         ValidationError = "IPv6-unclosed"
	IPv6InvalidCompress  ValidationError = "IPv6-invalid-compression"
	IPv6TooManyPieces    ValidationError = "IPv6-too-many-pieces"
	IPv6MultipleCompress ValidationError = "IPv6-multiple-compression"
	IPv6InvalidCodePoint ValidationError = "IPv6-invalid-code-point"
	IPv6TooFewPieces     ValidationError = "IPv6-too-few-pieces"

	IPv4InIPv6TooManyPieces    ValidationError = "IPv4-in-IPv6-too-many-pieces"
	IPv4InIPv6InvalidCodePoint ValidationError = "IPv4-in-IPv6-invalid-code-point"
	IPv4InIPv6OutOfRangePart   ValidationError = "IPv4-in-IPv6-out-of-range-part"
	IPv4InIPv6TooFewParts      ValidationError = "IPv4-in-IPv6-too-few-parts"
)

// URL parsing.
const (
	InvalidURLUnit                     ValidationError = "invalid-URL-unit"
	SpecialSchemeMissingFollowingSlash ValidationError = "special-scheme-missing-following-solidus"
	MissingSchemeNonRelativeURL        ValidationError = "missing-scheme-non-relative-URL"
	InvalidReverseSolidus              ValidationError = "invalid-reverse-solidus"
	InvalidCredentials                 ValidationError = "invalid-credentials"
	HostMissing                        ValidationError = "host-missing"
	PortOutOfRange                     ValidationError = "port-out-of-range"
	PortInvalid                        ValidationError = "port-invalid"
	FileInvalidWindowsDriveLetter      ValidationError = "file-invalid-Windows-drive-letter"
	FileInvalidWindowsDriveLetterHost  ValidationError = "file-invalid-Windows-drive-letter-host"
	InvalidSchemeStart                 ValidationError = "invalid-scheme-start"
	LeadingTrailingC0OrSpace           ValidationError = "leading-or-trailing-C0-control-or-space"
	TabOrNewline                       ValidationError = "tab-or-newline"
)
