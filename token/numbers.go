package token

import (
	"errors"
	"math"
	"strconv"

	"github.com/mosra/magnum-plugins-sub007/ir"
)

// Integer is the set of Go types integer literals decode to.
type Integer interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64
}

// Float is the set of Go types float literals decode to.
type Float interface {
	float32 | float64
}

func sign(d []byte, i int) (bool, int) {
	if i < len(d) {
		switch d[i] {
		case '-':
			return true, i + 1
		case '+':
			return false, i + 1
		}
	}
	return false, i
}

// prefix detects 0x, 0o and 0b.
func prefix(d []byte, i int) int {
	if i+1 < len(d) && d[i] == '0' {
		switch d[i+1] {
		case 'x', 'X':
			return 16
		case 'o', 'O':
			return 8
		case 'b', 'B':
			return 2
		}
	}
	return 10
}

func digitVal(c byte, base int) (uint64, bool) {
	v, ok := hexVal(c)
	if !ok || v >= base {
		return 0, false
	}
	return uint64(v), true
}

// magnitude scans digits in base with _ separators after the first digit.
// ok is false if no digit was found or the value exceeds limit.
func magnitude(d []byte, i, base int, limit uint64) (v uint64, end int, found, ok bool) {
	ok = true
	for ; i < len(d); i++ {
		c := d[i]
		if c == '_' && found {
			continue
		}
		x, isDigit := digitVal(c, base)
		if !isDigit {
			break
		}
		found = true
		if v > (limit-x)/uint64(base) {
			ok = false
			continue
		}
		v = v*uint64(base) + x
	}
	return v, i, found, ok
}

func intLimit(t ir.Type, neg bool) uint64 {
	bits := t.Bits()
	if !t.IsSigned() {
		if bits == 64 {
			return math.MaxUint64
		}
		return 1<<bits - 1
	}
	lim := uint64(1)<<(bits-1) - 1
	if neg {
		lim++
	}
	return lim
}

func terminated(d []byte, i int) bool {
	return i >= len(d) || !isIdentChar(d[i]) && d[i] != '.'
}

// IntLiteral scans an integer literal for T: optional sign, then a character
// literal, a 0x/0o/0b prefixed number or a decimal number. base is 256 for
// character literals.
func IntLiteral[T Integer](d []byte, i int) (v T, base int, end int, err error) {
	t := ir.TypeOf[T]()
	lit := t.String()
	start := i
	if i >= len(d) {
		return 0, 0, i, literalError(ErrExpectedLiteral, lit, d, i)
	}
	neg, i := sign(d, i)
	if neg && !t.IsSigned() {
		return 0, 0, start, NewError(ErrOutOfRange, d, start)
	}
	limit := intLimit(t, neg)
	var mag uint64
	if i < len(d) && d[i] == '\'' {
		base = 256
		mag, i, err = Char(d, i)
		if err != nil {
			return 0, 0, start, err
		}
		if mag > limit {
			return 0, 0, start, NewError(ErrOutOfRange, d, start)
		}
	} else {
		base = prefix(d, i)
		if base != 10 {
			i += 2
		}
		var found, ok bool
		mag, i, found, ok = magnitude(d, i, base, limit)
		switch {
		case !found || !terminated(d, i):
			return 0, 0, start, literalError(ErrInvalidLiteral, lit, d, start)
		case !ok:
			return 0, 0, start, NewError(ErrOutOfRange, d, start)
		}
	}
	if neg {
		return T(-int64(mag)), base, i, nil
	}
	return T(mag), base, i, nil
}

// FloatLiteral scans a floating point literal for T. A 0x/0o/0b prefixed
// literal gives the raw IEEE 754 bit pattern of the value.
func FloatLiteral[T Float](d []byte, i int) (T, int, error) {
	t := ir.TypeOf[T]()
	lit := t.String()
	start := i
	if i >= len(d) {
		return 0, i, literalError(ErrExpectedLiteral, lit, d, i)
	}
	neg, i := sign(d, i)
	if base := prefix(d, i); base != 10 {
		limit := uint64(math.MaxUint64)
		if t.Bits() == 32 {
			limit = math.MaxUint32
		}
		bits, j, found, ok := magnitude(d, i+2, base, limit)
		switch {
		case !found || !terminated(d, j):
			return 0, start, literalError(ErrInvalidLiteral, lit, d, start)
		case !ok:
			return 0, start, NewError(ErrOutOfRange, d, start)
		}
		var v T
		if t.Bits() == 32 {
			v = T(math.Float32frombits(uint32(bits)))
		} else {
			v = T(math.Float64frombits(bits))
		}
		if neg {
			v = -v
		}
		return v, j, nil
	}
	text := make([]byte, 0, 32)
	if neg {
		text = append(text, '-')
	}
	digits := func() bool {
		found := false
		for ; i < len(d); i++ {
			c := d[i]
			if c == '_' && found {
				continue
			}
			if c < '0' || c > '9' {
				break
			}
			found = true
			text = append(text, c)
		}
		return found
	}
	whole := digits()
	frac := false
	if i < len(d) && d[i] == '.' {
		text = append(text, '.')
		i++
		frac = digits()
	}
	if !whole && !frac {
		return 0, start, literalError(ErrInvalidLiteral, lit, d, start)
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		text = append(text, 'e')
		i++
		if i < len(d) && (d[i] == '+' || d[i] == '-') {
			text = append(text, d[i])
			i++
		}
		if !digits() {
			return 0, start, literalError(ErrInvalidLiteral, lit, d, start)
		}
	}
	if !terminated(d, i) {
		return 0, start, literalError(ErrInvalidLiteral, lit, d, start)
	}
	f, err := strconv.ParseFloat(string(text), t.Bits())
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, start, NewError(ErrOutOfRange, d, start)
		}
		return 0, start, literalError(ErrInvalidLiteral, lit, d, start)
	}
	return T(f), i, nil
}
