package uri_test

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/ghettovoice/gourl/uri"
)

func ExampleParse() {
	u, err := uri.Parse("HTTPS://User@Example.COM:443/a/./b/../c?q=1#top")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(u.Href())
	fmt.Println(u.Hostname(), u.Pathname(), u.Search(), u.Hash())
	fmt.Println(u.Origin())
	// Output:
	// https://User@example.com/a/c?q=1#top
	// example.com /a/c ?q=1 #top
	// https://example.com
}

func ExampleParseRef() {
	u, err := uri.ParseRef("../d?x", "http://example.com/a/b/c")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(u.String())
	// Output:
	// http://example.com/a/d?x
}

func ExampleBasicParse_errors() {
	_, err := uri.BasicParse("http://[::1", nil, nil)
	fmt.Println(errors.Is(err, uri.ErrInvalidURL), errors.Is(err, uri.IPv6Unclosed))
	// Output:
	// true true
}

func ExampleBasicParse_encoding() {
	rec, err := uri.BasicParse("http://example.com/?q=ü€", nil, &uri.ParseOptions{
		Encoding: charmap.Windows1252,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rec.String())
	// Output:
	// http://example.com/?q=%FC%80
}

func ExampleURL_SearchParams() {
	u, _ := uri.Parse("https://example.com/?a=1")
	u.SearchParams().Append("b", "x y")
	fmt.Println(u.Search())

	u.SetSearch("c=3")
	v, _ := u.SearchParams().Get("c")
	fmt.Println(v, u.Href())
	// Output:
	// ?a=1&b=x+y
	// 3 https://example.com/?c=3
}

func ExampleURL_SetHost() {
	u, _ := uri.Parse("http://example.com/path")
	u.SetHost("other.org:8080")
	u.SetPort("80")
	fmt.Println(u.Href())
	// Output:
	// http://other.org/path
}
