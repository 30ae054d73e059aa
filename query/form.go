// Package query implements the application/x-www-form-urlencoded format
// and an ordered list of name-value pairs that can be bound to a URL query.
package query

import (
	"strings"

	"golang.org/x/text/encoding"

	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/util"
)

// Pair is a single name-value pair of a query.
type Pair struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Decode parses s as application/x-www-form-urlencoded pairs.
// Empty sequences between '&' are skipped, '+' means a space and
// invalid UTF-8 after percent-decoding is replaced with U+FFFD.
func Decode(s string) []Pair {
	var pairs []Pair
	for seq := range strings.SplitSeq(s, "&") {
		if seq == "" {
			continue
		}
		name, value, _ := strings.Cut(seq, "=")
		pairs = append(pairs, Pair{
			Name:  decodeComponent(name),
			Value: decodeComponent(value),
		})
	}
	return pairs
}

func decodeComponent(s string) string {
	return grammar.DecodeUTF8(grammar.PercentDecode(strings.ReplaceAll(s, "+", " ")))
}

// Encode serializes pairs as application/x-www-form-urlencoded using enc.
// A nil enc means UTF-8.
func Encode(pairs []Pair, enc encoding.Encoding) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(grammar.EncodeAfterEncoding(enc, p.Name, grammar.FormSet, true))
		sb.WriteByte('=')
		sb.WriteString(grammar.EncodeAfterEncoding(enc, p.Value, grammar.FormSet, true))
	}
	return sb.String()
}
