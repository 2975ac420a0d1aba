package contracts

import (
	"github.com/baseconv/baseconv/internal/domain"
)

// Converter provides a way to convert numbers between the supported bases.
type Converter interface {
	// Convert converts the request input into the target base.
	Convert(req domain.ConversionRequest) (domain.Conversion, error)

	// Explain converts the request input into the target base,
	// populating the step-by-step explanation of how the result was derived.
	Explain(req domain.ConversionRequest) (domain.Conversion, error)
}
