package mcptools

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/radix"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	logger := hclog.NewNullLogger()
	converter, err := radix.NewConverter(logger)
	require.NoError(t, err)

	s, err := NewServer(logger, converter, "test")
	require.NoError(t, err)
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestNewServer_NilDependencies(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()
	converter, err := radix.NewConverter(logger)
	require.NoError(t, err)

	_, err = NewServer(nil, converter, "test")
	require.EqualError(t, err, "logger cannot be nil")

	var nilConverter *radix.Converter
	_, err = NewServer(logger, nilConverter, "test")
	require.EqualError(t, err, "converter cannot be nil")
}

func TestServer_HandleConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     map[string]any
		expected string
		isError  bool
	}{
		{
			name:     "binary to decimal",
			args:     map[string]any{"input": "1010", "from": "binary", "to": "decimal"},
			expected: "10",
		},
		{
			name:     "decimal to hexadecimal",
			args:     map[string]any{"input": "255", "from": "decimal", "to": "hexadecimal"},
			expected: "FF",
		},
		{
			name:     "base names ignore case",
			args:     map[string]any{"input": "17", "from": "Octal", "to": "BINARY"},
			expected: "1111",
		},
		{
			name:     "invalid digits",
			args:     map[string]any{"input": "19", "from": "octal", "to": "decimal"},
			expected: `invalid digits: "19" is not a valid octal number`,
			isError:  true,
		},
		{
			name:     "missing input",
			args:     map[string]any{"from": "octal", "to": "decimal"},
			expected: "missing field: input",
			isError:  true,
		},
		{
			name:     "wrong argument type",
			args:     map[string]any{"input": 10, "from": "decimal", "to": "binary"},
			expected: "missing field: input",
			isError:  true,
		},
		{
			name:     "unknown base",
			args:     map[string]any{"input": "10", "from": "ternary", "to": "binary"},
			expected: "unrecognized base: 'ternary'",
			isError:  true,
		},
	}

	s := testServer(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := s.handleConvert(context.Background(), callRequest(ToolConvert, tc.args))
			require.NoError(t, err)
			require.Equal(t, tc.isError, result.IsError)
			require.Equal(t, tc.expected, resultText(t, result))
		})
	}
}

func TestServer_HandleExplain(t *testing.T) {
	t.Parallel()

	s := testServer(t)
	result, err := s.handleExplain(
		context.Background(),
		callRequest(ToolExplain, map[string]any{"input": "A", "from": "hexadecimal", "to": "binary"}),
	)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	require.Contains(t, text, "(A)₁₆ = (1010)₂  hexadecimal → binary")

	conv, ok := result.StructuredContent.(domain.Conversion)
	require.True(t, ok)
	require.Equal(t, "1010", conv.Result)
	require.Equal(t, uint64(10), conv.Value)
	require.NotEmpty(t, conv.Steps)
	for _, step := range conv.Steps {
		require.Contains(t, text, step.Title)
	}
}

func TestServer_HandleExplain_Error(t *testing.T) {
	t.Parallel()

	s := testServer(t)
	result, err := s.handleExplain(
		context.Background(),
		callRequest(ToolExplain, map[string]any{"input": "12", "from": "binary", "to": "decimal"}),
	)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, `invalid digits: "12" is not a valid binary number`, resultText(t, result))
}

func TestServer_ListTools(t *testing.T) {
	t.Parallel()

	s := testServer(t)
	ctx := context.Background()

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26",` +
		`"capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	require.NotNil(t, s.MCPServer().HandleMessage(ctx, json.RawMessage(initialize)))

	msg := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	require.NotNil(t, msg)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name        string `json:"name"`
				InputSchema struct {
					Required   []string                  `json:"required"`
					Properties map[string]map[string]any `json:"properties"`
				} `json:"inputSchema"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Len(t, resp.Result.Tools, 2)

	names := make([]string, 0, len(resp.Result.Tools))
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
		require.ElementsMatch(t, []string{"input", "from", "to"}, tool.InputSchema.Required)
		require.ElementsMatch(
			t,
			[]any{"binary", "octal", "decimal", "hexadecimal"},
			tool.InputSchema.Properties["from"]["enum"],
		)
	}
	require.ElementsMatch(t, []string{ToolConvert, ToolExplain}, names)
}

func TestServer_CallTool(t *testing.T) {
	t.Parallel()

	s := testServer(t)
	ctx := context.Background()

	call := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"convert_number",` +
		`"arguments":{"input":"777","from":"octal","to":"decimal"}}}`
	msg := s.MCPServer().HandleMessage(ctx, json.RawMessage(call))
	require.NotNil(t, msg)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.False(t, resp.Result.IsError)
	require.Len(t, resp.Result.Content, 1)
	require.Equal(t, "511", resp.Result.Content[0].Text)
}

// Not parallel: stdio sessions are shared process-wide by the MCP library.
func TestServer_Serve(t *testing.T) {
	s := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26",` +
			`"capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"explain_conversion",` +
			`"arguments":{"input":"1010","from":"binary","to":"decimal"}}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, s.Serve(ctx, strings.NewReader(in), &out))

	responses := map[float64]map[string]any{}
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var msg map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &msg))
		id, ok := msg["id"].(float64)
		require.True(t, ok)
		responses[id] = msg
	}
	require.NoError(t, scanner.Err())
	require.Len(t, responses, 2)

	initResult, ok := responses[1]["result"].(map[string]any)
	require.True(t, ok)
	serverInfo, ok := initResult["serverInfo"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, ServerName, serverInfo["name"])

	callResult, ok := responses[2]["result"].(map[string]any)
	require.True(t, ok)
	structured, ok := callResult["structuredContent"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "10", structured["result"])
	require.Equal(t, "binary", structured["from"])
	require.Len(t, structured["steps"], 3)
}
