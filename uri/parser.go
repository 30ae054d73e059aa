package uri

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding"

	"github.com/ghettovoice/gourl/host"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/log"
	"github.com/ghettovoice/gourl/internal/util"
)

// BasicParse parses input as a URL, resolving it against base if base is not nil.
//
// Leading and trailing C0 controls and spaces are stripped, ASCII tabs and newlines are removed
// anywhere in the input. Non-fatal validation errors are reported through opts, fatal
// ones abort parsing with an error that matches [ErrInvalidURL] and the validation error.
func BasicParse(input string, base *Record, opts *ParseOptions) (*Record, error) {
	p := newParser(input, base, new(Record), 0, opts)
	if err := p.run(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return p.url, nil
}

// ParseOverride parses input into the record starting from the given state.
// The record is changed only if parsing succeeds.
//
// This is how single URL components are replaced: [StateSchemeStart] sets the scheme,
// [StateHost] the host and port, [StateHostname] the host, [StatePort] the port,
// [StatePathStart] the path, [StateQuery] and [StateFragment] append to the query and fragment.
// Depending on the state and the record, some input is silently ignored,
// for example a scheme change between special and non-special schemes.
func (r *Record) ParseOverride(input string, state State, opts *ParseOptions) error {
	if !state.IsValid() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown parser state %d", state))
	}
	scratch := r.Clone()
	if err := newParser(input, nil, scratch, state, opts).run(); err != nil {
		return errtrace.Wrap(err)
	}
	*r = *scratch
	return nil
}

const eof rune = -1

type parser struct {
	raw      string
	input    []rune
	pointer  int
	base     *Record
	url      *Record
	state    State
	override State
	buffer   []rune
	enc      encoding.Encoding

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool

	log    *slog.Logger
	report func(ValidationError)
}

func newParser(input string, base, url *Record, override State, opts *ParseOptions) *parser {
	p := &parser{
		raw:      input,
		base:     base,
		url:      url,
		override: override,
		state:    override,
		enc:      opts.encoding(),
		log:      opts.log(),
		report:   opts.onValidationError(),
	}
	if p.state == 0 {
		p.state = StateSchemeStart
	}

	if override == 0 {
		trimmed := strings.TrimFunc(input, grammar.IsC0ControlOrSpace)
		if len(trimmed) != len(input) {
			p.validationError(LeadingTrailingC0OrSpace)
		}
		input = trimmed
	}
	if strings.ContainsFunc(input, grammar.IsASCIITabOrNewline) {
		p.validationError(TabOrNewline)
		input = strings.Map(func(r rune) rune {
			if grammar.IsASCIITabOrNewline(r) {
				return -1
			}
			return r
		}, input)
	}
	p.input = []rune(input)
	return p
}

func (p *parser) validationError(code ValidationError) {
	p.log.Debug("URL validation error", "code", code, "input", log.StringValue(p.raw), "state", p.state.String(), "pos", p.pointer)
	if p.report != nil {
		p.report(code)
	}
}

func (p *parser) fail(code ValidationError) error {
	p.validationError(code)
	return errtrace.Wrap(newURLErr(code, p.raw))
}

func (p *parser) failHost(err error) error {
	var code ValidationError
	if errors.As(err, &code) {
		p.validationError(code)
	}
	return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURL, err))
}

// stepResult tells the parser loop whether to advance to the next code point or return.
type stepResult uint8

const (
	stepNext stepResult = iota // keep going
	stepDone                   // stop, the URL is complete
)

type stateFunc func(p *parser, c rune) (stepResult, error)

var stateFuncs = [len(stateNames)]stateFunc{
	StateSchemeStart:                   (*parser).schemeStart,
	StateScheme:                        (*parser).scheme,
	StateNoScheme:                      (*parser).noScheme,
	StateSpecialRelativeOrAuthority:    (*parser).specialRelativeOrAuthority,
	StatePathOrAuthority:               (*parser).pathOrAuthority,
	StateRelative:                      (*parser).relative,
	StateRelativeSlash:                 (*parser).relativeSlash,
	StateSpecialAuthoritySlashes:       (*parser).specialAuthoritySlashes,
	StateSpecialAuthorityIgnoreSlashes: (*parser).specialAuthorityIgnoreSlashes,
	StateAuthority:                     (*parser).authority,
	StateHost:                          (*parser).host,
	StateHostname:                      (*parser).host,
	StatePort:                          (*parser).port,
	StateFile:                          (*parser).file,
	StateFileSlash:                     (*parser).fileSlash,
	StateFileHost:                      (*parser).fileHost,
	StatePathStart:                     (*parser).pathStart,
	StatePath:                          (*parser).path,
	StateOpaquePath:                    (*parser).opaquePath,
	StateQuery:                         (*parser).query,
	StateFragment:                      (*parser).fragment,
}

func (p *parser) run() error {
	for {
		c := eof
		if p.pointer >= 0 && p.pointer < len(p.input) {
			c = p.input[p.pointer]
		}
		res, err := stateFuncs[p.state](p, c)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if res == stepDone || p.pointer >= len(p.input) {
			return nil
		}
		p.pointer++
	}
}

// remaining returns the code points after the pointer.
func (p *parser) remaining() []rune {
	if p.pointer+1 >= len(p.input) {
		return nil
	}
	return p.input[p.pointer+1:]
}

func (p *parser) remainingStartsWith(s string) bool {
	rem := p.remaining()
	i := 0
	for _, r := range s {
		if i >= len(rem) || rem[i] != r {
			return false
		}
		i++
	}
	return true
}

// validateURLUnit reports code points that are not allowed unencoded in a URL.
func (p *parser) validateURLUnit(c rune) {
	if c != '%' && !grammar.IsURLCodePoint(c) {
		p.validationError(InvalidURLUnit)
		return
	}
	if c == '%' {
		rem := p.remaining()
		if len(rem) < 2 || !grammar.IsASCIIHex(rem[0]) || !grammar.IsASCIIHex(rem[1]) {
			p.validationError(InvalidURLUnit)
		}
	}
}

// bufferEncoded appends c to the buffer, percent-encoded if set contains it.
func (p *parser) bufferEncoded(c rune, set grammar.EncodeSet) {
	if set.Contains(c) {
		p.buffer = append(p.buffer, []rune(grammar.PercentEncodeRune(c))...)
		return
	}
	p.buffer = append(p.buffer, c)
}

func (p *parser) isSpecialSlash(c rune) bool {
	return c == '/' || p.url.IsSpecial() && c == '\\'
}

func (p *parser) isAuthorityEnd(c rune) bool {
	return c == eof || c == '?' || c == '#' || p.isSpecialSlash(c)
}

func (p *parser) schemeStart(c rune) (stepResult, error) {
	switch {
	case grammar.IsASCIIAlpha(c):
		p.buffer = append(p.buffer, c)
		p.state = StateScheme
	case p.override == 0:
		p.state = StateNoScheme
		p.pointer--
	default:
		return stepDone, errtrace.Wrap(p.fail(InvalidSchemeStart))
	}
	return stepNext, nil
}

func (p *parser) scheme(c rune) (stepResult, error) {
	switch {
	case grammar.IsSchemeChar(c):
		p.buffer = append(p.buffer, c)
	case c == ':':
		scheme := util.ASCIILCase(string(p.buffer))
		if p.override != 0 {
			if p.url.IsSpecial() != IsSpecialScheme(scheme) {
				return stepDone, nil
			}
			if (p.url.IncludesCredentials() || p.url.hasPort) && scheme == "file" {
				return stepDone, nil
			}
			if p.url.scheme == "file" && p.url.host.IsEmpty() {
				return stepDone, nil
			}
		}

		p.url.scheme = scheme
		if p.override != 0 {
			if p.url.hasPort {
				p.url.setPort(p.url.port)
			}
			return stepDone, nil
		}

		p.buffer = p.buffer[:0]
		switch {
		case scheme == "file":
			if !p.remainingStartsWith("//") {
				p.validationError(SpecialSchemeMissingFollowingSlash)
			}
			p.state = StateFile
		case p.url.IsSpecial() && p.base != nil && p.base.scheme == scheme:
			p.state = StateSpecialRelativeOrAuthority
		case p.url.IsSpecial():
			p.state = StateSpecialAuthoritySlashes
		case p.remainingStartsWith("/"):
			p.state = StatePathOrAuthority
			p.pointer++
		default:
			p.url.setOpaquePath("")
			p.state = StateOpaquePath
		}
	case p.override == 0:
		p.buffer = p.buffer[:0]
		p.state = StateNoScheme
		p.pointer = -1
	default:
		return stepDone, errtrace.Wrap(p.fail(InvalidSchemeStart))
	}
	return stepNext, nil
}

func (p *parser) noScheme(c rune) (stepResult, error) {
	switch {
	case p.base == nil || p.base.opaque && c != '#':
		return stepDone, errtrace.Wrap(p.fail(MissingSchemeNonRelativeURL))
	case p.base.opaque && c == '#':
		p.url.scheme = p.base.scheme
		p.url.path = append(p.url.path[:0], p.base.path...)
		p.url.opaque = true
		p.url.query, p.url.hasQuery = p.base.query, p.base.hasQuery
		p.url.fragment, p.url.hasFragment = "", true
		p.state = StateFragment
	case p.base.scheme != "file":
		p.state = StateRelative
		p.pointer--
	default:
		p.state = StateFile
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) specialRelativeOrAuthority(c rune) (stepResult, error) {
	if c == '/' && p.remainingStartsWith("/") {
		p.state = StateSpecialAuthorityIgnoreSlashes
		p.pointer++
	} else {
		p.validationError(SpecialSchemeMissingFollowingSlash)
		p.state = StateRelative
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) pathOrAuthority(c rune) (stepResult, error) {
	if c == '/' {
		p.state = StateAuthority
	} else {
		p.state = StatePath
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) copyBaseAuthority() {
	p.url.username = p.base.username
	p.url.password = p.base.password
	p.url.host = p.base.host
	p.url.port, p.url.hasPort = p.base.port, p.base.hasPort
}

func (p *parser) relative(c rune) (stepResult, error) {
	p.url.scheme = p.base.scheme
	switch {
	case c == '/':
		p.state = StateRelativeSlash
	case p.url.IsSpecial() && c == '\\':
		p.validationError(InvalidReverseSolidus)
		p.state = StateRelativeSlash
	default:
		p.copyBaseAuthority()
		p.url.path = append(p.url.path[:0], p.base.path...)
		p.url.query, p.url.hasQuery = p.base.query, p.base.hasQuery
		switch c {
		case '?':
			p.url.query, p.url.hasQuery = "", true
			p.state = StateQuery
		case '#':
			p.url.fragment, p.url.hasFragment = "", true
			p.state = StateFragment
		case eof:
		default:
			p.url.query, p.url.hasQuery = "", false
			p.url.shortenPath()
			p.state = StatePath
			p.pointer--
		}
	}
	return stepNext, nil
}

func (p *parser) relativeSlash(c rune) (stepResult, error) {
	switch {
	case p.url.IsSpecial() && (c == '/' || c == '\\'):
		if c == '\\' {
			p.validationError(InvalidReverseSolidus)
		}
		p.state = StateSpecialAuthorityIgnoreSlashes
	case c == '/':
		p.state = StateAuthority
	default:
		p.copyBaseAuthority()
		p.state = StatePath
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) specialAuthoritySlashes(c rune) (stepResult, error) {
	if c == '/' && p.remainingStartsWith("/") {
		p.state = StateSpecialAuthorityIgnoreSlashes
		p.pointer++
	} else {
		p.validationError(SpecialSchemeMissingFollowingSlash)
		p.state = StateSpecialAuthorityIgnoreSlashes
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) specialAuthorityIgnoreSlashes(c rune) (stepResult, error) {
	if c != '/' && c != '\\' {
		p.state = StateAuthority
		p.pointer--
	} else {
		p.validationError(SpecialSchemeMissingFollowingSlash)
	}
	return stepNext, nil
}

func (p *parser) authority(c rune) (stepResult, error) {
	switch {
	case c == '@':
		p.validationError(InvalidCredentials)
		if p.atSignSeen {
			p.buffer = append([]rune("%40"), p.buffer...)
		}
		p.atSignSeen = true

		user := util.GetStringBuilder()
		defer util.FreeStringBuilder(user)
		pass := util.GetStringBuilder()
		defer util.FreeStringBuilder(pass)
		for _, r := range p.buffer {
			if r == ':' && !p.passwordTokenSeen {
				p.passwordTokenSeen = true
				continue
			}
			if p.passwordTokenSeen {
				grammar.AppendEncodedRune(pass, r, grammar.UserinfoSet)
			} else {
				grammar.AppendEncodedRune(user, r, grammar.UserinfoSet)
			}
		}
		p.url.username += user.String()
		p.url.password += pass.String()
		p.buffer = p.buffer[:0]
	case p.isAuthorityEnd(c):
		if p.atSignSeen && len(p.buffer) == 0 {
			return stepDone, errtrace.Wrap(p.fail(HostMissing))
		}
		// rewind to the start of the host, which is what the buffer holds
		p.pointer -= len(p.buffer) + 1
		p.buffer = p.buffer[:0]
		p.state = StateHost
	default:
		p.buffer = append(p.buffer, c)
	}
	return stepNext, nil
}

func (p *parser) parseHost() (host.Host, error) {
	h, err := host.ParseReport(string(p.buffer), p.url.IsSpecial(), p.validationError)
	if err != nil {
		p.log.Debug("URL host parsing failed", "input", log.StringValue(p.raw), "host", string(p.buffer), "error", err)
		return host.Host{}, errtrace.Wrap(p.failHost(err))
	}
	return h, nil
}

func (p *parser) host(c rune) (stepResult, error) {
	switch {
	case p.override != 0 && p.url.scheme == "file":
		p.pointer--
		p.state = StateFileHost
	case c == ':' && !p.insideBrackets:
		if len(p.buffer) == 0 {
			return stepDone, errtrace.Wrap(p.fail(HostMissing))
		}
		if p.override == StateHostname {
			return stepDone, errtrace.Wrap(p.fail(PortInvalid))
		}
		h, err := p.parseHost()
		if err != nil {
			return stepDone, errtrace.Wrap(err)
		}
		p.url.host = h
		p.buffer = p.buffer[:0]
		p.state = StatePort
	case p.isAuthorityEnd(c):
		p.pointer--
		if p.url.IsSpecial() && len(p.buffer) == 0 {
			return stepDone, errtrace.Wrap(p.fail(HostMissing))
		}
		if p.override != 0 && len(p.buffer) == 0 && (p.url.IncludesCredentials() || p.url.hasPort) {
			return stepDone, nil
		}
		h, err := p.parseHost()
		if err != nil {
			return stepDone, errtrace.Wrap(err)
		}
		p.url.host = h
		p.buffer = p.buffer[:0]
		p.state = StatePathStart
		if p.override != 0 {
			return stepDone, nil
		}
	default:
		switch c {
		case '[':
			p.insideBrackets = true
		case ']':
			p.insideBrackets = false
		}
		p.buffer = append(p.buffer, c)
	}
	return stepNext, nil
}

func (p *parser) port(c rune) (stepResult, error) {
	switch {
	case grammar.IsASCIIDigit(c):
		p.buffer = append(p.buffer, c)
	case p.isAuthorityEnd(c) || p.override != 0:
		if len(p.buffer) > 0 {
			digits := strings.TrimLeft(string(p.buffer), "0")
			if len(digits) > 5 {
				return stepDone, errtrace.Wrap(p.fail(PortOutOfRange))
			}
			n, _ := strconv.Atoi(digits)
			if n > 65535 {
				return stepDone, errtrace.Wrap(p.fail(PortOutOfRange))
			}
			p.url.setPort(uint16(n))
			p.buffer = p.buffer[:0]
			if p.override != 0 {
				return stepDone, nil
			}
		}
		switch p.override {
		case 0:
		case StatePort:
			return stepDone, errtrace.Wrap(p.fail(PortInvalid))
		default:
			// host with an empty port, the host is kept
			return stepDone, nil
		}
		p.state = StatePathStart
		p.pointer--
	default:
		return stepDone, errtrace.Wrap(p.fail(PortInvalid))
	}
	return stepNext, nil
}

func (p *parser) startsWithWindowsDriveLetter() bool {
	if p.pointer < 0 || p.pointer >= len(p.input) {
		return false
	}
	return grammar.StartsWithWindowsDriveLetter(p.input[p.pointer:])
}

func (p *parser) file(c rune) (stepResult, error) {
	p.url.scheme = "file"
	p.url.host = host.Empty()
	switch {
	case c == '/' || c == '\\':
		if c == '\\' {
			p.validationError(InvalidReverseSolidus)
		}
		p.state = StateFileSlash
	case p.base != nil && p.base.scheme == "file":
		p.url.host = p.base.host
		p.url.path = append(p.url.path[:0], p.base.path...)
		p.url.query, p.url.hasQuery = p.base.query, p.base.hasQuery
		switch c {
		case '?':
			p.url.query, p.url.hasQuery = "", true
			p.state = StateQuery
		case '#':
			p.url.fragment, p.url.hasFragment = "", true
			p.state = StateFragment
		case eof:
		default:
			p.url.query, p.url.hasQuery = "", false
			if !p.startsWithWindowsDriveLetter() {
				p.url.shortenPath()
			} else {
				p.validationError(FileInvalidWindowsDriveLetter)
				p.url.path = p.url.path[:0]
			}
			p.state = StatePath
			p.pointer--
		}
	default:
		p.state = StatePath
		p.pointer--
	}
	return stepNext, nil
}

func (p *parser) fileSlash(c rune) (stepResult, error) {
	if c == '/' || c == '\\' {
		if c == '\\' {
			p.validationError(InvalidReverseSolidus)
		}
		p.state = StateFileHost
		return stepNext, nil
	}

	if p.base != nil && p.base.scheme == "file" {
		p.url.host = p.base.host
		if !p.startsWithWindowsDriveLetter() && len(p.base.path) > 0 && grammar.IsNormalizedWindowsDriveLetter(p.base.path[0]) {
			p.url.path = append(p.url.path, p.base.path[0])
		}
	}
	p.state = StatePath
	p.pointer--
	return stepNext, nil
}

func (p *parser) fileHost(c rune) (stepResult, error) {
	switch c {
	case eof, '/', '\\', '?', '#':
	default:
		p.buffer = append(p.buffer, c)
		return stepNext, nil
	}

	p.pointer--
	switch {
	case p.override == 0 && grammar.IsWindowsDriveLetter(string(p.buffer)):
		// the buffer is kept and becomes the first path segment
		p.validationError(FileInvalidWindowsDriveLetterHost)
		p.state = StatePath
	case len(p.buffer) == 0:
		p.url.host = host.Empty()
		if p.override != 0 {
			return stepDone, nil
		}
		p.state = StatePathStart
	default:
		h, err := p.parseHost()
		if err != nil {
			return stepDone, errtrace.Wrap(err)
		}
		if h.Kind() == host.KindDomain && h.Name() == "localhost" {
			h = host.Empty()
		}
		p.url.host = h
		if p.override != 0 {
			return stepDone, nil
		}
		p.buffer = p.buffer[:0]
		p.state = StatePathStart
	}
	return stepNext, nil
}

func (p *parser) pathStart(c rune) (stepResult, error) {
	switch {
	case p.url.IsSpecial():
		if c == '\\' {
			p.validationError(InvalidReverseSolidus)
		}
		p.state = StatePath
		if c != '/' && c != '\\' {
			p.pointer--
		}
	case p.override == 0 && c == '?':
		p.url.query, p.url.hasQuery = "", true
		p.state = StateQuery
	case p.override == 0 && c == '#':
		p.url.fragment, p.url.hasFragment = "", true
		p.state = StateFragment
	case c != eof:
		p.state = StatePath
		if c != '/' {
			p.pointer--
		}
	case p.override != 0 && p.url.host.IsZero():
		p.url.path = append(p.url.path, "")
	}
	return stepNext, nil
}

func (p *parser) path(c rune) (stepResult, error) {
	slash := p.isSpecialSlash(c)
	if !(c == eof || slash || p.override == 0 && (c == '?' || c == '#')) {
		p.validateURLUnit(c)
		p.bufferEncoded(c, grammar.PathSet)
		return stepNext, nil
	}

	if p.url.IsSpecial() && c == '\\' {
		p.validationError(InvalidReverseSolidus)
	}
	seg := string(p.buffer)
	switch {
	case grammar.IsDoubleDotSegment(seg):
		p.url.shortenPath()
		if !slash {
			p.url.path = append(p.url.path, "")
		}
	case grammar.IsSingleDotSegment(seg):
		if !slash {
			p.url.path = append(p.url.path, "")
		}
	default:
		if p.url.scheme == "file" && len(p.url.path) == 0 && grammar.IsWindowsDriveLetter(seg) {
			seg = seg[:1] + ":"
		}
		p.url.path = append(p.url.path, seg)
	}
	p.buffer = p.buffer[:0]

	switch c {
	case '?':
		p.url.query, p.url.hasQuery = "", true
		p.state = StateQuery
	case '#':
		p.url.fragment, p.url.hasFragment = "", true
		p.state = StateFragment
	}
	return stepNext, nil
}

func (p *parser) opaquePath(c rune) (stepResult, error) {
	switch c {
	case '?', '#', eof:
		p.url.appendOpaquePath(string(p.buffer))
		p.buffer = p.buffer[:0]
	default:
		p.validateURLUnit(c)
		p.bufferEncoded(c, grammar.C0ControlSet)
		return stepNext, nil
	}

	switch c {
	case '?':
		p.url.query, p.url.hasQuery = "", true
		p.state = StateQuery
	case '#':
		p.url.fragment, p.url.hasFragment = "", true
		p.state = StateFragment
	}
	return stepNext, nil
}

func (p *parser) query(c rune) (stepResult, error) {
	if p.enc != nil && (!p.url.IsSpecial() || p.url.scheme == "ws" || p.url.scheme == "wss") {
		p.enc = nil
	}

	if c == eof || p.override == 0 && c == '#' {
		set := grammar.QuerySet
		if p.url.IsSpecial() {
			set = grammar.SpecialQuerySet
		}
		p.url.query += grammar.EncodeAfterEncoding(p.enc, string(p.buffer), set, false)
		p.url.hasQuery = true
		p.buffer = p.buffer[:0]
		if c == '#' {
			p.url.fragment, p.url.hasFragment = "", true
			p.state = StateFragment
		}
		return stepNext, nil
	}

	p.validateURLUnit(c)
	p.buffer = append(p.buffer, c)
	return stepNext, nil
}

func (p *parser) fragment(c rune) (stepResult, error) {
	if c == eof {
		p.url.fragment += string(p.buffer)
		p.url.hasFragment = true
		p.buffer = p.buffer[:0]
		return stepNext, nil
	}
	p.validateURLUnit(c)
	p.bufferEncoded(c, grammar.FragmentSet)
	return stepNext, nil
}
