package radix

import (
	"fmt"
	"strings"

	"github.com/baseconv/baseconv/internal/domain"
)

// Explain performs the conversion described by req and attaches a three-step explanation:
// identifying the input, expanding it positionally into decimal, and dividing the decimal value
// repeatedly by the target radix.
func Explain(req domain.ConversionRequest) (domain.Conversion, error) {
	conv, err := convert(req)
	if err != nil {
		return domain.Conversion{}, err
	}

	conv.Steps = []domain.Step{
		identifyStep(conv),
		decimalStep(conv),
		targetStep(conv),
	}

	return conv, nil
}

func identifyStep(conv domain.Conversion) domain.Step {
	return domain.Step{
		Title: "Step 1: Identify Input",
		Summary: fmt.Sprintf(
			"You entered the number %s in %s (base %d).",
			conv.Input,
			conv.From,
			conv.From.Radix(),
		),
	}
}

func decimalStep(conv domain.Conversion) domain.Step {
	return domain.Step{
		Title: "Step 2: Convert to Decimal (Base 10)",
		Summary: fmt.Sprintf(
			"Multiply each digit of %s by %d raised to the power of its position, then add the results. "+
				"The result is %d.",
			conv.Input,
			conv.From.Radix(),
			conv.Value,
		),
		Lines: []string{expansion(conv.Value, conv.From)},
	}
}

func targetStep(conv domain.Conversion) domain.Step {
	return domain.Step{
		Title: fmt.Sprintf("Step 3: Convert Decimal to %s", conv.To.Title()),
		Summary: fmt.Sprintf(
			"Convert the decimal value %d to base %d (%s) by dividing by %d repeatedly and recording the remainders. "+
				"Result: %s.",
			conv.Value,
			conv.To.Radix(),
			conv.To,
			conv.To.Radix(),
			conv.Result,
		),
		Lines: divisions(conv.Value, conv.To),
	}
}

// expansion writes v in base as a positional sum, most significant digit first.
// e.g. (FF)₁₆ = 15 × 16^1 + 15 × 16^0 = 255
func expansion(v uint64, base domain.Base) string {
	digits := Format(v, base)
	terms := make([]string, 0, len(digits))
	for i, r := range digits {
		position := len(digits) - 1 - i
		terms = append(terms, fmt.Sprintf("%d × %d^%d", digitValue(r), base.Radix(), position))
	}

	return fmt.Sprintf("(%s)%s = %s = %d", digits, base.Subscript(), strings.Join(terms, " + "), v)
}

// divisions lists each division by the target radix, followed by how the remainders form the result.
func divisions(v uint64, base domain.Base) []string {
	if v == 0 {
		return []string{"The value is 0, which is written as 0 in every base."}
	}

	radix := uint64(base.Radix())
	var lines []string
	for n := v; n > 0; n /= radix {
		remainder := n % radix
		line := fmt.Sprintf("%d ÷ %d = %d remainder %d", n, radix, n/radix, remainder)
		if remainder >= 10 {
			line += fmt.Sprintf(" (%s)", Format(remainder, base))
		}
		lines = append(lines, line)
	}

	lines = append(lines, fmt.Sprintf("Reading the remainders from bottom to top gives %s.", Format(v, base)))

	return lines
}
