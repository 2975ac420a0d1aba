package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baseconv/baseconv/internal/cmd"
	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/mcptools"
)

// MCPCmd should be used to represent the 'mcp' command.
type MCPCmd struct {
	*cmd.BaseCmd
	converterFactory cmdopts.ConverterFactory
}

// NewMCPCmd creates a newly configured (Cobra) command.
func NewMCPCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &MCPCmd{
		BaseCmd:          baseCmd,
		converterFactory: opts.ConverterFactory,
	}

	cobraCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Serves the conversion tools to MCP clients over stdio",
		Long: fmt.Sprintf(
			"Serves the '%s' and '%s' tools to Model Context Protocol clients over stdin/stdout.\n\n"+
				"Nothing but protocol messages is written to stdout, use --log-path to capture logs.",
			mcptools.ToolConvert,
			mcptools.ToolExplain,
		),
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	return cobraCommand, nil
}

func (c *MCPCmd) run(cobraCmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return c.serve(ctx, cobraCmd.InOrStdin(), cobraCmd.OutOrStdout())
}

func (c *MCPCmd) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	converter, err := c.converterFactory(logger)
	if err != nil {
		return fmt.Errorf("failed to create converter: %w", err)
	}

	srv, err := mcptools.NewServer(logger, converter, version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := srv.Serve(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server exited with error", "error", err)
		return err
	}

	return nil
}
