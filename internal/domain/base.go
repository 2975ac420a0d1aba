package domain

import (
	"fmt"
	"strings"

	"github.com/baseconv/baseconv/internal/errors"
)

const (
	Binary      Base = 2
	Octal       Base = 8
	Decimal     Base = 10
	Hexadecimal Base = 16
)

// Base is one of the supported number bases. Its underlying value is the radix.
type Base uint8

// Bases returns every supported base in ascending radix order.
func Bases() []Base {
	return []Base{Binary, Octal, Decimal, Hexadecimal}
}

// ParseBase resolves a base name such as "hexadecimal".
// Matching ignores case and surrounding whitespace.
func ParseBase(name string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary":
		return Binary, nil
	case "octal":
		return Octal, nil
	case "decimal":
		return Decimal, nil
	case "hexadecimal":
		return Hexadecimal, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", errors.ErrUnrecognizedBase, name)
	}
}

// IsValid reports whether b is one of the supported bases.
func (b Base) IsValid() bool {
	switch b {
	case Binary, Octal, Decimal, Hexadecimal:
		return true
	default:
		return false
	}
}

// Radix returns the number of distinct digits in the base.
func (b Base) Radix() int {
	return int(b)
}

// String returns the base name used on every external interface.
func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return fmt.Sprintf("base(%d)", uint8(b))
	}
}

// Title returns the base name with its first letter capitalized.
func (b Base) Title() string {
	s := b.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Alphabet returns the characters accepted as digits in the base.
// Hexadecimal accepts both letter cases.
func (b Base) Alphabet() string {
	switch b {
	case Binary:
		return "01"
	case Octal:
		return "01234567"
	case Decimal:
		return "0123456789"
	case Hexadecimal:
		return "0123456789abcdefABCDEF"
	default:
		return ""
	}
}

// Example returns a short sample number written in the base.
func (b Base) Example() string {
	switch b {
	case Binary:
		return "1010"
	case Octal:
		return "17"
	case Decimal:
		return "123"
	case Hexadecimal:
		return "1A3F"
	default:
		return ""
	}
}

// Subscript returns the radix written with Unicode subscript digits, e.g. "₁₆".
func (b Base) Subscript() string {
	const subscripts = "₀₁₂₃₄₅₆₇₈₉"
	digits := []rune(subscripts)

	var sb strings.Builder
	for _, r := range fmt.Sprintf("%d", b.Radix()) {
		sb.WriteRune(digits[r-'0'])
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler so bases serialize by name.
func (b Base) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnrecognizedBase, uint8(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Base) UnmarshalText(text []byte) error {
	parsed, err := ParseBase(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
