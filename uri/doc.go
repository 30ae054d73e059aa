// Package uri implements parsing, resolution, serialization and manipulation of URLs
// as defined by the WHATWG URL Standard.
//
// # Overview
//
// The package works on two levels:
//
//   - [Record]: an immutable-by-default parsed URL produced by [BasicParse].
//     It is the result of the basic URL parser with optional base URL, and the only
//     way to change it is [Record.ParseOverride], which re-runs the parser from a
//     given [State] over a single component.
//
//   - [URL]: a mutable wrapper around a record with component getters and setters,
//     and a [query.Params] list bound to the URL query in both directions.
//
// # Parsing
//
// Parse an absolute URL or resolve a reference against a base:
//
//	u, err := uri.Parse("HTTPS://Example.COM:443/a/./b/../c?q=1#top")
//	if err != nil {
//		// errors.Is(err, uri.ErrInvalidURL) == true
//	}
//	fmt.Println(u.Href()) // https://example.com/a/c?q=1#top
//
//	r, err := uri.ParseRef("../d?x", "http://example.com/a/b/c")
//	fmt.Println(r.Href()) // http://example.com/a/d?x
//
// Parsing never fails for recoverable problems of the input. Those are reported as
// [ValidationError] codes through [ParseOptions.OnValidationError] and logged at debug level:
//
//	rec, err := uri.BasicParse("http://exa mple.com", nil, &uri.ParseOptions{
//		OnValidationError: func(code uri.ValidationError) { ... },
//	})
//
// Fatal problems abort parsing. The returned error matches [ErrInvalidURL]
// and the [ValidationError] that caused it:
//
//	_, err := uri.Parse("http://[::1")
//	errors.Is(err, uri.IPv6Unclosed) // true
//
// # Query encoding
//
// [ParseOptions.Encoding] sets a legacy output encoding for queries of special URLs,
// as HTML documents do for their links. Code points the encoding can not represent
// are written as percent-encoded numeric character references:
//
//	rec, _ := uri.BasicParse("http://example.com/?q=ü€", nil, &uri.ParseOptions{
//		Encoding: charmap.Windows1252,
//	})
//	fmt.Println(rec.String()) // http://example.com/?q=%FC%80
//
// # Setters
//
// [URL] setters follow the URL Standard API: input that can not be applied is ignored
// and the URL stays as it was. Changes made through [URL.SearchParams] update the
// query, and [URL.SetSearch] and [URL.SetHref] replace the parameters list:
//
//	u, _ := uri.Parse("https://example.com/?a=1")
//	u.SearchParams().Append("b", "x y")
//	fmt.Println(u.Search()) // ?a=1&b=x+y
//	u.SetSearch("c=3")
//	v, _ := u.SearchParams().Get("c") // "3"
//
// # Origin
//
// [Record.Origin] and [URL.Origin] return the origin of a URL: a tuple of scheme, host
// and port for ftp, http, https, ws and wss URLs, the origin of the wrapped URL for blob URLs,
// and an opaque origin for everything else.
//
// # Concurrency
//
// Parsing is safe for concurrent use. Records and URLs are not safe for concurrent
// modification.
package uri

//go:generate go tool errtrace -w .
