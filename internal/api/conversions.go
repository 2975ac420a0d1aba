package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/domain"
)

// DomainConversion is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainConversion domain.Conversion

// DomainStep is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainStep domain.Step

// ConversionRequestBody carries the fields of a conversion request.
// Fields are optional at the schema level so that missing values are reported as "Invalid parameters".
// Unknown fields are ignored.
type ConversionRequestBody struct {
	_ struct{} `additionalProperties:"true"`

	InputValue string `doc:"Digits to convert, written in fromBase" example:"1010"   json:"inputValue,omitempty"`
	FromBase   string `doc:"Base the input is written in"            example:"binary"  json:"fromBase,omitempty"`
	ToBase     string `doc:"Base to convert the input to"            example:"decimal" json:"toBase,omitempty"`
}

// ConversionRequest represents the incoming request for converting a number.
type ConversionRequest struct {
	Body ConversionRequestBody
}

// ConversionResponse is the response for POST /convert.
type ConversionResponse struct {
	Body struct {
		Result string `doc:"Converted digits in the target base" example:"10" json:"result"`
	}
}

// Step is a single stage of a conversion explanation.
type Step struct {
	Title   string   `doc:"Step heading"                 json:"title"`
	Summary string   `doc:"What happens in this step"    json:"summary"`
	Lines   []string `doc:"Worked calculation, in order" json:"lines,omitempty"`
}

// Explanation is a conversion result along with the steps used to derive it.
type Explanation struct {
	Input  string `doc:"Digits as supplied"                    json:"input"`
	From   string `doc:"Base the input is written in"          json:"fromBase"`
	To     string `doc:"Base the result is written in"         json:"toBase"`
	Value  uint64 `doc:"Decimal value of the input"            json:"value"`
	Result string `doc:"Converted digits in the target base"   json:"result"`
	Steps  []Step `doc:"Step-by-step explanation of the result" json:"steps"`
}

// ExplanationResponse is the response for POST /explain.
type ExplanationResponse struct {
	Body Explanation
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainStep) ToAPIType() (Step, error) {
	return Step{
		Title:   d.Title,
		Summary: d.Summary,
		Lines:   d.Lines,
	}, nil
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainConversion) ToAPIType() (Explanation, error) {
	steps := make([]Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		step, err := DomainStep(s).ToAPIType()
		if err != nil {
			return Explanation{}, err
		}
		steps = append(steps, step)
	}

	return Explanation{
		Input:  d.Input,
		From:   d.From.String(),
		To:     d.To.String(),
		Value:  d.Value,
		Result: d.Result,
		Steps:  steps,
	}, nil
}

// RegisterConversionRoutes sets up conversion-related API endpoint routes.
func RegisterConversionRoutes(routerAPI huma.API, converter contracts.Converter, logger hclog.Logger) {
	tags := []string{"Conversions"}

	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID:   "convert",
			Method:        http.MethodPost,
			Path:          "/convert",
			DefaultStatus: http.StatusOK,
			Summary:       "Convert a number between bases",
			Tags:          tags,
		},
		func(ctx context.Context, input *ConversionRequest) (*ConversionResponse, error) {
			resp, err := handleConvert(converter, input.Body)
			if err != nil {
				return nil, MapError(logger, err)
			}
			return resp, nil
		},
	)

	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID:   "explain",
			Method:        http.MethodPost,
			Path:          "/explain",
			DefaultStatus: http.StatusOK,
			Summary:       "Convert a number between bases and explain each step",
			Tags:          tags,
		},
		func(ctx context.Context, input *ConversionRequest) (*ExplanationResponse, error) {
			resp, err := handleExplain(converter, input.Body)
			if err != nil {
				return nil, MapError(logger, err)
			}
			return resp, nil
		},
	)
}

// handleConvert is the handler for converting a number between bases.
func handleConvert(converter contracts.Converter, body ConversionRequestBody) (*ConversionResponse, error) {
	req, err := domain.NewConversionRequest(body.InputValue, body.FromBase, body.ToBase)
	if err != nil {
		return nil, err
	}

	conv, err := converter.Convert(req)
	if err != nil {
		return nil, err
	}

	resp := &ConversionResponse{}
	resp.Body.Result = conv.Result

	return resp, nil
}

// handleExplain is the handler for converting a number and explaining how the result was derived.
func handleExplain(converter contracts.Converter, body ConversionRequestBody) (*ExplanationResponse, error) {
	req, err := domain.NewConversionRequest(body.InputValue, body.FromBase, body.ToBase)
	if err != nil {
		return nil, err
	}

	conv, err := converter.Explain(req)
	if err != nil {
		return nil, err
	}

	data, err := DomainConversion(conv).ToAPIType()
	if err != nil {
		return nil, err
	}

	return &ExplanationResponse{Body: data}, nil
}
