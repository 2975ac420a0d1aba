package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baseconv/baseconv/internal/cmd"
	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the root command, exiting with a non-zero status on failure.
func Execute() error {
	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: &cmd.BaseCmd{}})
	if err != nil {
		return fmt.Errorf("error creating root command: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}

	return nil
}

// NewRootCmd builds the command tree, passing opt to every sub-command.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:          "baseconv <command> [args]",
		Short:        "Converts numbers between binary, octal, decimal and hexadecimal",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewConvertCmd,
		NewBasesCmd,
		NewDaemonCmd,
		NewMCPCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `Converts non-negative integers between binary, octal, decimal and hexadecimal,
optionally explaining every step of the calculation.

Conversions are available from the command line, over an HTTP API with a web page
('baseconv daemon'), and as MCP tools over stdio ('baseconv mcp').`
}
