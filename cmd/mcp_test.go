package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/contracts"
)

// Not parallel: stdio sessions are shared process-wide by the MCP library.
func TestMCPCmd_Serve(t *testing.T) {
	c := &MCPCmd{
		BaseCmd:          testBaseCmd(),
		converterFactory: cmdopts.DefaultConverterFactory,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"
	var out bytes.Buffer
	require.NoError(t, c.serve(ctx, strings.NewReader(in), &out))

	require.Contains(t, out.String(), `"name":"convert_number"`)
	require.Contains(t, out.String(), `"name":"explain_conversion"`)
}

func TestMCPCmd_ConverterFactoryError(t *testing.T) {
	t.Parallel()

	factory := func(_ hclog.Logger) (contracts.Converter, error) {
		return nil, fmt.Errorf("boom")
	}

	cobraCmd, err := NewMCPCmd(testBaseCmd(), cmdopts.WithConverterFactory(factory))
	require.NoError(t, err)

	cobraCmd.SetIn(strings.NewReader(""))
	cobraCmd.SetOut(&bytes.Buffer{})
	cobraCmd.SetErr(&bytes.Buffer{})
	cobraCmd.SetArgs([]string{})
	require.EqualError(t, cobraCmd.Execute(), "failed to create converter: boom")
}
