// Package radix implements validation, parsing and formatting of numbers written in the supported bases.
package radix

import (
	stdErrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/errors"
)

// Validate checks that digits is non-empty and only uses characters from the base's digit alphabet.
func Validate(digits string, base domain.Base) error {
	if !base.IsValid() {
		return fmt.Errorf("%w: %s", errors.ErrUnrecognizedBase, base)
	}
	if digits == "" {
		return fmt.Errorf("%w: input", errors.ErrMissingField)
	}

	alphabet := base.Alphabet()
	for _, r := range digits {
		if !strings.ContainsRune(alphabet, r) {
			return &errors.InvalidDigitsError{Digits: digits, Base: base.String()}
		}
	}

	return nil
}

// Parse decodes digits written in base into its integer value.
// Leading zeros are accepted and carry no meaning.
func Parse(digits string, base domain.Base) (uint64, error) {
	if err := Validate(digits, base); err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(digits, base.Radix(), 64)
	if err != nil {
		if stdErrors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q exceeds the largest supported value", errors.ErrOutOfRange, digits)
		}
		return 0, &errors.InvalidDigitsError{Digits: digits, Base: base.String()}
	}

	return v, nil
}

// Format encodes v in base. Hexadecimal letters are uppercase.
func Format(v uint64, base domain.Base) string {
	return strings.ToUpper(strconv.FormatUint(v, base.Radix()))
}

// Convert re-encodes digits written in base from as a number written in base to.
func Convert(digits string, from domain.Base, to domain.Base) (string, error) {
	conv, err := convert(domain.ConversionRequest{Input: digits, From: from, To: to})
	if err != nil {
		return "", err
	}

	return conv.Result, nil
}

// convert performs the conversion described by req without any explanation.
func convert(req domain.ConversionRequest) (domain.Conversion, error) {
	if !req.To.IsValid() {
		return domain.Conversion{}, fmt.Errorf("%w: %s", errors.ErrUnrecognizedBase, req.To)
	}

	v, err := Parse(req.Input, req.From)
	if err != nil {
		return domain.Conversion{}, err
	}

	return domain.Conversion{
		Input:  req.Input,
		From:   req.From,
		To:     req.To,
		Value:  v,
		Result: Format(v, req.To),
	}, nil
}

// Canonical returns digits without superfluous leading zeros, with hexadecimal letters uppercased.
// The value zero is returned as "0".
func Canonical(digits string, base domain.Base) (string, error) {
	return Convert(digits, base, base)
}

// digitValue returns the numeric value of a single validated digit.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
