package host

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/grammar"
)

// ParseIPv4 parses input as an IPv4 address.
// Parts may be decimal, octal with a leading "0" or hexadecimal with a leading "0x",
// the last part fills all remaining bytes of the address.
//
// If the input does not look like an address at all (an empty or non-numeric part,
// more than four parts), ok is false and the input should be treated as a domain.
// A non-nil error means the input is a malformed address: a part other than the last
// exceeds 255 or the last part overflows the remaining bytes.
func ParseIPv4(input string) (addr uint32, ok bool, err error) {
	return errtrace.Wrap3(parseIPv4(input, func(ValidationError) {}))
}

func parseIPv4(input string, report func(ValidationError)) (uint32, bool, error) {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		report(grammar.IPv4EmptyPart)
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) > 4 {
		report(grammar.IPv4TooManyParts)
		return 0, false, nil
	}

	nums := make([]uint64, 0, len(parts))
	var nonDecimal bool
	for _, part := range parts {
		if part == "" {
			return 0, false, nil
		}
		n, radix, ok := parseIPv4Number(part)
		if !ok {
			return 0, false, nil
		}
		if radix != 10 {
			nonDecimal = true
		}
		nums = append(nums, n)
	}
	if nonDecimal {
		report(grammar.IPv4NonDecimalPart)
	}

	last := len(nums) - 1
	for i, n := range nums {
		if n <= 255 {
			continue
		}
		report(grammar.IPv4OutOfRangePart)
		if i != last {
			return 0, false, errtrace.Wrap(newHostErr(grammar.IPv4OutOfRangePart, input))
		}
	}
	if nums[last] >= 1<<(8*(5-len(nums))) {
		return 0, false, errtrace.Wrap(newHostErr(grammar.IPv4OutOfRangePart, input))
	}

	addr := nums[last]
	for i, n := range nums[:last] {
		addr += n << (8 * (3 - i))
	}
	return uint32(addr), true, nil
}

// parseIPv4Number parses a single address part.
// Values that do not fit into uint64 saturate, they are out of range anyway.
func parseIPv4Number(s string) (n uint64, radix int, ok bool) {
	radix = 10
	switch {
	case len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X"):
		s, radix = s[2:], 16
	case len(s) >= 2 && s[0] == '0':
		s, radix = s[1:], 8
	}
	if s == "" {
		return 0, radix, true
	}

	n, err := strconv.ParseUint(s, radix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxUint64, radix, true
		}
		return 0, radix, false
	}
	return n, radix, true
}

// SerializeIPv4 returns the dotted-decimal form of addr.
func SerializeIPv4(addr uint32) string {
	var buf [15]byte
	b := buf[:0]
	for i := 3; i >= 0; i-- {
		b = strconv.AppendUint(b, uint64(addr>>(8*i)&0xFF), 10)
		if i > 0 {
			b = append(b, '.')
		}
	}
	return string(b)
}
