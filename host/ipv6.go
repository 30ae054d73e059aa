package host

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/grammar"
)

// ParseIPv6 parses input, without enclosing brackets, as an IPv6 address.
// At most one "::" compression is allowed and the address may end with a dotted-quad
// IPv4 address taking the last two pieces.
func ParseIPv6(input string) ([8]uint16, error) {
	var addr [8]uint16
	fail := func(code ValidationError) ([8]uint16, error) {
		return [8]uint16{}, errtrace.Wrap(newHostErr(code, input))
	}

	p := 0
	c := func() int {
		if p < len(input) {
			return int(input[p])
		}
		return -1
	}
	isDigit := func(c int) bool { return '0' <= c && c <= '9' }

	pieceIdx, compress := 0, -1
	if c() == ':' {
		if p+1 >= len(input) || input[p+1] != ':' {
			return fail(grammar.IPv6InvalidCompress)
		}
		p += 2
		pieceIdx++
		compress = pieceIdx
	}

pieces:
	for c() != -1 {
		if pieceIdx == 8 {
			return fail(grammar.IPv6TooManyPieces)
		}
		if c() == ':' {
			if compress != -1 {
				return fail(grammar.IPv6MultipleCompress)
			}
			p++
			pieceIdx++
			compress = pieceIdx
			continue
		}

		var value, length int
		for length < 4 && c() != -1 && grammar.IsASCIIHex(rune(c())) {
			value = value*16 + hexVal(c())
			p++
			length++
		}

		switch c() {
		case '.':
			if length == 0 {
				return fail(grammar.IPv4InIPv6InvalidCodePoint)
			}
			p -= length
			if pieceIdx > 6 {
				return fail(grammar.IPv4InIPv6TooManyPieces)
			}

			numbersSeen := 0
			for c() != -1 {
				piece := -1
				if numbersSeen > 0 {
					if c() != '.' || numbersSeen >= 4 {
						return fail(grammar.IPv4InIPv6InvalidCodePoint)
					}
					p++
				}
				if !isDigit(c()) {
					return fail(grammar.IPv4InIPv6InvalidCodePoint)
				}
				for isDigit(c()) {
					n := c() - '0'
					switch piece {
					case -1:
						piece = n
					case 0:
						return fail(grammar.IPv4InIPv6InvalidCodePoint)
					default:
						piece = piece*10 + n
					}
					if piece > 255 {
						return fail(grammar.IPv4InIPv6OutOfRangePart)
					}
					p++
				}
				addr[pieceIdx] = addr[pieceIdx]<<8 | uint16(piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIdx++
				}
			}
			if numbersSeen != 4 {
				return fail(grammar.IPv4InIPv6TooFewParts)
			}
			break pieces
		case ':':
			p++
			if c() == -1 {
				return fail(grammar.IPv6InvalidCodePoint)
			}
		case -1:
		default:
			return fail(grammar.IPv6InvalidCodePoint)
		}

		addr[pieceIdx] = uint16(value)
		pieceIdx++
	}

	if compress != -1 {
		swaps := pieceIdx - compress
		for i := 7; i != 0 && swaps > 0; i, swaps = i-1, swaps-1 {
			j := compress + swaps - 1
			addr[i], addr[j] = addr[j], addr[i]
		}
	} else if pieceIdx != 8 {
		return fail(grammar.IPv6TooFewPieces)
	}
	return addr, nil
}

func hexVal(c int) int {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// SerializeIPv6 returns the canonical text form of addr without brackets.
// Pieces are written in lowercase hex, the leftmost longest run of two or more
// zero pieces is compressed to "::". IPv4-mapped addresses end with a dotted quad.
func SerializeIPv6(addr [8]uint16) string {
	if addr[0]|addr[1]|addr[2]|addr[3]|addr[4] == 0 && addr[5] == 0xFFFF {
		return "::ffff:" + SerializeIPv4(uint32(addr[6])<<16|uint32(addr[7]))
	}

	start, length := longestZeroRun(addr)

	var buf [39]byte
	b := buf[:0]
	for i := 0; i < 8; i++ {
		if i == start {
			if i == 0 {
				b = append(b, ':')
			}
			b = append(b, ':')
			i += length - 1
			continue
		}
		b = strconv.AppendUint(b, uint64(addr[i]), 16)
		if i < 7 {
			b = append(b, ':')
		}
	}
	return string(b)
}

// longestZeroRun returns the first longest run of at least two zero pieces,
// start is -1 if there is none.
func longestZeroRun(addr [8]uint16) (start, length int) {
	start = -1
	for i := 0; i < 8; {
		if addr[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && addr[j] == 0 {
			j++
		}
		if n := j - i; n >= 2 && n > length {
			start, length = i, n
		}
		i = j
	}
	return start, length
}
