package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HealthStatusOK is reported whenever the API is able to serve requests.
const HealthStatusOK HealthStatus = "ok"

// HealthStatus represents the availability of the API.
type HealthStatus string

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body struct {
		Status HealthStatus `doc:"API availability" example:"ok" json:"status"`
	}
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(routerAPI huma.API) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Path:        "/health",
			Summary:     "Get the health status of the API",
			Tags:        []string{"Health"},
		},
		func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
			resp := &HealthResponse{}
			resp.Body.Status = HealthStatusOK
			return resp, nil
		},
	)
}
