// Package mcptools exposes number base conversion as Model Context Protocol tools served over stdio.
package mcptools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/printer"
)

const (
	// ServerName is reported to MCP clients during initialization.
	ServerName = "baseconv"

	// ToolConvert converts a number between bases.
	ToolConvert = "convert_number"

	// ToolExplain converts a number between bases and explains each step.
	ToolExplain = "explain_conversion"

	argInput = "input"
	argFrom  = "from"
	argTo    = "to"
)

// Server serves the conversion tools.
// NewServer should be used to create instances of Server.
type Server struct {
	logger    hclog.Logger
	converter contracts.Converter
	mcp       *server.MCPServer
}

// NewServer creates an MCP server exposing the conversion tools, backed by converter.
func NewServer(logger hclog.Logger, converter contracts.Converter, version string) (*Server, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if converter == nil || reflect.ValueOf(converter).IsNil() {
		return nil, fmt.Errorf("converter cannot be nil")
	}

	s := &Server{
		logger:    logger.Named("mcp"),
		converter: converter,
		mcp:       server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(conversionTool(ToolConvert, "Convert a number between binary, octal, decimal and hexadecimal."), s.handleConvert)
	s.mcp.AddTool(
		conversionTool(ToolExplain, "Convert a number between bases and explain each step of the calculation."),
		s.handleExplain,
	)

	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve reads JSON-RPC messages from in and writes responses to out until ctx is canceled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	s.logger.Info("Serving MCP tools over stdio", "tools", []string{ToolConvert, ToolExplain})
	return stdio.Listen(ctx, in, out)
}

func conversionTool(name string, description string) mcp.Tool {
	names := baseNames()

	return mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString(argInput, mcp.Required(), mcp.Description("Digits to convert, written in the 'from' base")),
		mcp.WithString(argFrom, mcp.Required(), mcp.Enum(names...), mcp.Description("Base the input is written in")),
		mcp.WithString(argTo, mcp.Required(), mcp.Enum(names...), mcp.Description("Base to convert the input to")),
	)
}

func baseNames() []string {
	bases := domain.Bases()
	names := make([]string, 0, len(bases))
	for _, b := range bases {
		names = append(names, b.String())
	}
	return names
}

func (s *Server) handleConvert(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conv, err := s.run(req, s.converter.Convert)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(conv.Result), nil
}

func (s *Server) handleExplain(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conv, err := s.run(req, s.converter.Explain)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := (&printer.ConversionPrinter{}).Item(&buf, conv); err != nil {
		return nil, fmt.Errorf("failed to render explanation: %w", err)
	}

	return mcp.NewToolResultStructured(conv, buf.String()), nil
}

// run validates the tool arguments and applies fn to them.
// Validation and conversion failures are returned as errors for the caller to report as tool errors.
func (s *Server) run(
	req mcp.CallToolRequest,
	fn func(domain.ConversionRequest) (domain.Conversion, error),
) (domain.Conversion, error) {
	args := req.GetArguments()
	input, _ := args[argInput].(string)
	from, _ := args[argFrom].(string)
	to, _ := args[argTo].(string)

	convReq, err := domain.NewConversionRequest(input, from, to)
	if err != nil {
		s.logger.Debug("Rejected tool call", "tool", req.Params.Name, "error", err)
		return domain.Conversion{}, err
	}

	return fn(convReq)
}
