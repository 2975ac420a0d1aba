package radix

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/errors"
)

func TestExplain_HexadecimalToBinary(t *testing.T) {
	t.Parallel()

	conv, err := Explain(domain.ConversionRequest{Input: "FF", From: domain.Hexadecimal, To: domain.Binary})
	require.NoError(t, err)
	require.Equal(t, "11111111", conv.Result)
	require.Equal(t, uint64(255), conv.Value)
	require.Len(t, conv.Steps, 3)

	require.Equal(t, "Step 1: Identify Input", conv.Steps[0].Title)
	require.Equal(t, "You entered the number FF in hexadecimal (base 16).", conv.Steps[0].Summary)
	require.Empty(t, conv.Steps[0].Lines)

	require.Equal(t, "Step 2: Convert to Decimal (Base 10)", conv.Steps[1].Title)
	require.Contains(t, conv.Steps[1].Summary, "The result is 255.")
	require.Equal(t, []string{"(FF)₁₆ = 15 × 16^1 + 15 × 16^0 = 255"}, conv.Steps[1].Lines)

	require.Equal(t, "Step 3: Convert Decimal to Binary", conv.Steps[2].Title)
	require.Contains(t, conv.Steps[2].Summary, "Result: 11111111.")
	require.Len(t, conv.Steps[2].Lines, 9)
	require.Equal(t, "255 ÷ 2 = 127 remainder 1", conv.Steps[2].Lines[0])
	require.Equal(t, "1 ÷ 2 = 0 remainder 1", conv.Steps[2].Lines[7])
	require.Equal(t, "Reading the remainders from bottom to top gives 11111111.", conv.Steps[2].Lines[8])
}

func TestExplain_BinaryExpansion(t *testing.T) {
	t.Parallel()

	conv, err := Explain(domain.ConversionRequest{Input: "001010", From: domain.Binary, To: domain.Decimal})
	require.NoError(t, err)
	require.Equal(t, "10", conv.Result)
	require.Equal(t, "You entered the number 001010 in binary (base 2).", conv.Steps[0].Summary)
	require.Equal(
		t,
		[]string{"(1010)₂ = 1 × 2^3 + 0 × 2^2 + 1 × 2^1 + 0 × 2^0 = 10"},
		conv.Steps[1].Lines,
	)
	require.Equal(t, []string{
		"10 ÷ 10 = 1 remainder 0",
		"1 ÷ 10 = 0 remainder 1",
		"Reading the remainders from bottom to top gives 10.",
	}, conv.Steps[2].Lines)
}

func TestExplain_HexadecimalRemainders(t *testing.T) {
	t.Parallel()

	conv, err := Explain(domain.ConversionRequest{Input: "171", From: domain.Decimal, To: domain.Hexadecimal})
	require.NoError(t, err)
	require.Equal(t, "AB", conv.Result)
	require.Equal(t, []string{
		"171 ÷ 16 = 10 remainder 11 (B)",
		"10 ÷ 16 = 0 remainder 10 (A)",
		"Reading the remainders from bottom to top gives AB.",
	}, conv.Steps[2].Lines)
}

func TestExplain_Zero(t *testing.T) {
	t.Parallel()

	conv, err := Explain(domain.ConversionRequest{Input: "000", From: domain.Octal, To: domain.Hexadecimal})
	require.NoError(t, err)
	require.Equal(t, "0", conv.Result)
	require.Equal(t, []string{"(0)₈ = 0 × 8^0 = 0"}, conv.Steps[1].Lines)
	require.Equal(t, []string{"The value is 0, which is written as 0 in every base."}, conv.Steps[2].Lines)
}

func TestExplain_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Explain(domain.ConversionRequest{Input: "19", From: domain.Octal, To: domain.Decimal})
	require.ErrorIs(t, err, errors.ErrInvalidDigits)
}

func TestNewConverter_NilLogger(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(nil)
	require.EqualError(t, err, "logger cannot be nil")
}

func TestConverter(t *testing.T) {
	t.Parallel()

	c, err := NewConverter(hclog.NewNullLogger())
	require.NoError(t, err)

	req := domain.ConversionRequest{Input: "1010", From: domain.Binary, To: domain.Decimal}

	conv, err := c.Convert(req)
	require.NoError(t, err)
	require.Equal(t, "10", conv.Result)
	require.Equal(t, uint64(10), conv.Value)
	require.Empty(t, conv.Steps)

	explained, err := c.Explain(req)
	require.NoError(t, err)
	require.Equal(t, "10", explained.Result)
	require.Len(t, explained.Steps, 3)

	_, err = c.Convert(domain.ConversionRequest{Input: "2", From: domain.Binary, To: domain.Decimal})
	require.ErrorIs(t, err, errors.ErrInvalidDigits)

	_, err = c.Explain(domain.ConversionRequest{Input: "2", From: domain.Binary, To: domain.Decimal})
	require.ErrorIs(t, err, errors.ErrInvalidDigits)
}
