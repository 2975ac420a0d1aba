package radix

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/domain"
)

var _ contracts.Converter = (*Converter)(nil)

// Converter exposes Convert and Explain to the API, CLI and MCP front ends.
// NewConverter should be used to create instances of Converter.
type Converter struct {
	logger hclog.Logger
}

// NewConverter creates a Converter that logs conversion outcomes to the supplied logger.
func NewConverter(logger hclog.Logger) (*Converter, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Converter{
		logger: logger.Named("converter"),
	}, nil
}

// Convert converts the request input into the target base.
func (c *Converter) Convert(req domain.ConversionRequest) (domain.Conversion, error) {
	conv, err := convert(req)
	if err != nil {
		c.logger.Debug("Conversion rejected", "input", req.Input, "from", req.From, "to", req.To, "error", err)
		return domain.Conversion{}, err
	}

	c.logger.Debug("Converted", "input", req.Input, "from", req.From, "to", req.To, "result", conv.Result)
	return conv, nil
}

// Explain converts the request input and includes the step-by-step explanation.
func (c *Converter) Explain(req domain.ConversionRequest) (domain.Conversion, error) {
	conv, err := Explain(req)
	if err != nil {
		c.logger.Debug("Explanation rejected", "input", req.Input, "from", req.From, "to", req.To, "error", err)
		return domain.Conversion{}, err
	}

	c.logger.Debug("Explained", "input", req.Input, "from", req.From, "to", req.To, "steps", len(conv.Steps))
	return conv, nil
}
