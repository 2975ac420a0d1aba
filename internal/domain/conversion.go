package domain

import (
	"fmt"
	"strings"

	"github.com/baseconv/baseconv/internal/errors"
)

// ConversionRequest is a validated request to convert Input from one base to another.
// NewConversionRequest should be used to create instances from untrusted input.
type ConversionRequest struct {
	Input string
	From  Base
	To    Base
}

// Conversion is the outcome of a successful conversion.
type Conversion struct {
	// Input is the digit string exactly as it was supplied.
	Input string `json:"input" yaml:"input"`

	// From is the base Input is written in.
	From Base `json:"from" yaml:"from"`

	// To is the base Result is written in.
	To Base `json:"to" yaml:"to"`

	// Value is the integer Input represents.
	Value uint64 `json:"value" yaml:"value"`

	// Result is Value written in the target base, in canonical form (uppercase for hexadecimal).
	Result string `json:"result" yaml:"result"`

	// Steps optionally explains how Result was derived.
	Steps []Step `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Step is a single stage of a conversion explanation.
type Step struct {
	Title   string   `json:"title" yaml:"title"`
	Summary string   `json:"summary" yaml:"summary"`
	Lines   []string `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// NewConversionRequest validates raw field values and resolves the base names.
// Digit validation against the source base is left to the converter.
func NewConversionRequest(input string, from string, to string) (ConversionRequest, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"input", input},
		{"from", from},
		{"to", to},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ConversionRequest{}, fmt.Errorf("%w: %s", errors.ErrMissingField, f.name)
		}
	}

	fromBase, err := ParseBase(from)
	if err != nil {
		return ConversionRequest{}, err
	}

	toBase, err := ParseBase(to)
	if err != nil {
		return ConversionRequest{}, err
	}

	return ConversionRequest{
		Input: input,
		From:  fromBase,
		To:    toBase,
	}, nil
}
