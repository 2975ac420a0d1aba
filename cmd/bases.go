package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/baseconv/baseconv/internal/cmd"
	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/cmd/output"
	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/printer"
)

// BasesCmd should be used to represent the 'bases' command.
type BasesCmd struct {
	*internalcmd.BaseCmd
	Format  internalcmd.OutputFormat
	printer output.Printer[printer.BaseInfo]
}

// NewBasesCmd creates a newly configured (Cobra) command.
func NewBasesCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	if _, err := cmdopts.NewOptions(opt...); err != nil {
		return nil, err
	}

	c := &BasesCmd{
		BaseCmd: baseCmd,
		Format:  internalcmd.FormatText,
		printer: &printer.BaseListPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "bases",
		Short: "Lists the supported bases",
		Long:  "Lists the supported bases with their radix, digit alphabet and an example number",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *BasesCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	bases := domain.Bases()
	infos := make([]printer.BaseInfo, 0, len(bases))
	for _, b := range bases {
		infos = append(infos, printer.NewBaseInfo(b))
	}

	return handler.HandleResults(infos...)
}
