package daemon

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/api"
	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/errors"
	"github.com/baseconv/baseconv/internal/web"
)

// APIServer manages the HTTP API and web page for the daemon.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	// Logger for API server operations.
	logger hclog.Logger

	// Converter performs conversions for the API routes.
	converter contracts.Converter

	// Addr specifies the network address to bind.
	addr string

	// CORS configuration for cross-origin requests.
	cors CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	shutdownTimeout time.Duration
}

// NewAPIServer creates a new API server with the provided dependencies and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewAPIServer(deps APIDependencies, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		converter:       deps.Converter,
		addr:            deps.Addr,
		cors:            apiOpts.CORS,
		shutdownTimeout: apiOpts.ShutdownTimeout,
	}, nil
}

// Handler builds the router serving the versioned API, its generated docs and the web page.
// It returns the API path prefix alongside the handler.
//
// NOTE: huma's error constructors are package level, so building a handler replaces them for the whole process.
func (a *APIServer) Handler() (http.Handler, string, error) {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if a.cors.Enabled {
		a.applyCORS(mux)
	}

	mux.NotFound(a.writeError(api.NewError(http.StatusNotFound, api.MessageNotFound)))
	mux.MethodNotAllowed(a.writeError(api.MapError(a.logger, errors.ErrMethodNotAllowed)))

	config := huma.DefaultConfig("baseconv API", api.APIVersion)
	// Responses are plain {"result": ...} objects without a $schema link.
	config.CreateHooks = nil
	router := humachi.New(mux, config)

	// Every error produced by huma itself is rendered as {"error": ...}.
	huma.NewErrorWithContext = errorHandler(a.logger)
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newStatusError(a.logger, status, msg, errs...)
	}

	apiPathPrefix, err := api.RegisterRoutes(router, a.converter, a.logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to register API routes: %w", err)
	}

	page, err := web.NewPage(a.logger, apiPathPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create web page: %w", err)
	}
	web.RegisterRoutes(mux, page)

	return mux, apiPathPrefix, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, apiPathPrefix, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting API server", "address", a.addr, "prefix", apiPathPrefix)
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Handle graceful shutdown.
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down API server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("API server shutdown incomplete", "error", err)
		}
		a.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (a *APIServer) applyCORS(mux *chi.Mux) {
	a.logger.Info("Enabling CORS", "origins", a.cors.AllowOrigins)

	corsOptions := cors.Options{
		AllowedOrigins:   make([]string, 0, len(a.cors.AllowOrigins)),
		AllowedMethods:   a.cors.AllowMethods,
		AllowedHeaders:   a.cors.AllowedHeaders,
		ExposedHeaders:   a.cors.ExposedHeaders,
		AllowCredentials: a.cors.AllowCredentials,
		MaxAge:           int(a.cors.MaxAge.Seconds()),
	}

	// A wildcard origin cannot be combined with credentials.
	for _, origin := range a.cors.AllowOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins = append(corsOptions.AllowedOrigins, origin)
	}

	mux.Use(cors.Handler(corsOptions))
}

// writeError returns a handler that always responds with the given error.
func (a *APIServer) writeError(statusErr huma.StatusError) http.HandlerFunc {
	body, err := json.Marshal(statusErr)
	if err != nil {
		a.logger.Error("Failed to encode error response", "error", err)
		body = []byte(`{"error":"` + api.MessageInternalError + `"}`)
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusErr.GetStatus())
		_, _ = w.Write(body)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// It allows the logger to be supplied to functions that resolve huma.StatusError.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		return newStatusError(logger, status, msg, errs...)
	}
}

// newStatusError converts errors raised by huma (body parsing, schema validation, content negotiation)
// into the API error model.
func newStatusError(logger hclog.Logger, status int, msg string, errs ...error) huma.StatusError {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// Malformed bodies and schema violations read as missing or unusable parameters.
		err := fmt.Errorf("%w: %s", errors.ErrInvalidParameters, msg)
		if len(errs) > 0 {
			err = fmt.Errorf("%w: %w", err, stdErrors.Join(errs...))
		}
		return api.MapError(logger, err)
	case http.StatusMethodNotAllowed:
		return api.MapError(logger, errors.ErrMethodNotAllowed)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("API error", "status", status, "message", msg, "error", stdErrors.Join(errs...))
		return api.NewError(status, api.MessageInternalError)
	}

	return api.NewError(status, msg)
}
