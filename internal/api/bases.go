package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baseconv/baseconv/internal/domain"
)

// DomainBase is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainBase domain.Base

// Base describes a supported number base.
type Base struct {
	Name     string `doc:"Name used in conversion requests" example:"hexadecimal"            json:"name"`
	Radix    int    `doc:"Number of distinct digits"        example:"16"                     json:"radix"`
	Alphabet string `doc:"Characters accepted as digits"    example:"0123456789abcdefABCDEF" json:"alphabet"`
	Example  string `doc:"Sample number in this base"       example:"1A3F"                   json:"example"`
}

// BasesResponse is the response for GET /bases.
type BasesResponse struct {
	Body struct {
		Bases []Base `doc:"Supported bases in ascending radix order" json:"bases"`
	}
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainBase) ToAPIType() (Base, error) {
	b := domain.Base(d)
	if !b.IsValid() {
		return Base{}, fmt.Errorf("unknown base: %d", uint8(b))
	}

	return Base{
		Name:     b.String(),
		Radix:    b.Radix(),
		Alphabet: b.Alphabet(),
		Example:  b.Example(),
	}, nil
}

// RegisterBaseRoutes sets up the routes describing the supported bases.
func RegisterBaseRoutes(routerAPI huma.API) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "listBases",
			Method:      http.MethodGet,
			Path:        "/bases",
			Summary:     "List the supported number bases",
			Tags:        []string{"Bases"},
		},
		func(ctx context.Context, _ *struct{}) (*BasesResponse, error) {
			return handleBases()
		},
	)
}

// handleBases is the handler for listing the supported bases.
func handleBases() (*BasesResponse, error) {
	bases := domain.Bases()

	apiBases := make([]Base, 0, len(bases))
	for _, b := range bases {
		data, err := DomainBase(b).ToAPIType()
		if err != nil {
			return nil, err
		}
		apiBases = append(apiBases, data)
	}

	resp := &BasesResponse{}
	resp.Body.Bases = apiBases

	return resp, nil
}
