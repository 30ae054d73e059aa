package uri

import "strconv"

// State is a state of the URL parser.
// Passing a state to [Record.ParseOverride] starts parsing from it and stops
// once the component that state is responsible for is parsed.
type State uint8

const (
	StateSchemeStart State = iota + 1
	StateScheme
	StateNoScheme
	StateSpecialRelativeOrAuthority
	StatePathOrAuthority
	StateRelative
	StateRelativeSlash
	StateSpecialAuthoritySlashes
	StateSpecialAuthorityIgnoreSlashes
	StateAuthority
	StateHost
	StateHostname
	StatePort
	StateFile
	StateFileSlash
	StateFileHost
	StatePathStart
	StatePath
	StateOpaquePath
	StateQuery
	StateFragment
)

var stateNames = [...]string{
	StateSchemeStart:                   "scheme start",
	StateScheme:                        "scheme",
	StateNoScheme:                      "no scheme",
	StateSpecialRelativeOrAuthority:    "special relative or authority",
	StatePathOrAuthority:               "path or authority",
	StateRelative:                      "relative",
	StateRelativeSlash:                 "relative slash",
	StateSpecialAuthoritySlashes:       "special authority slashes",
	StateSpecialAuthorityIgnoreSlashes: "special authority ignore slashes",
	StateAuthority:                     "authority",
	StateHost:                          "host",
	StateHostname:                      "hostname",
	StatePort:                          "port",
	StateFile:                          "file",
	StateFileSlash:                     "file slash",
	StateFileHost:                      "file host",
	StatePathStart:                     "path start",
	StatePath:                          "path",
	StateOpaquePath:                    "opaque path",
	StateQuery:                         "query",
	StateFragment:                      "fragment",
}

func (s State) String() string {
	if s > 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// IsValid reports whether s is a known parser state.
func (s State) IsValid() bool { return s > 0 && int(s) < len(stateNames) }
