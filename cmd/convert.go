package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	internalcmd "github.com/baseconv/baseconv/internal/cmd"
	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/cmd/output"
	"github.com/baseconv/baseconv/internal/domain"
	"github.com/baseconv/baseconv/internal/printer"
)

// ConvertCmd should be used to represent the 'convert' command.
type ConvertCmd struct {
	*internalcmd.BaseCmd
	From             string
	To               string
	Explain          bool
	Format           internalcmd.OutputFormat
	converterFactory cmdopts.ConverterFactory
	printer          output.Printer[domain.Conversion]
}

// NewConvertCmd creates a newly configured (Cobra) command.
func NewConvertCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ConvertCmd{
		BaseCmd:          baseCmd,
		Format:           internalcmd.FormatText,
		converterFactory: opts.ConverterFactory,
		printer:          &printer.ConversionPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "convert <digits> --from <base> --to <base>",
		Short: "Converts a number from one base to another",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	cobraCmd.Flags().StringVar(
		&c.From,
		"from",
		"",
		fmt.Sprintf("Base the digits are written in (one of: %s)", baseNames()),
	)

	cobraCmd.Flags().StringVar(
		&c.To,
		"to",
		"",
		fmt.Sprintf("Base to convert the digits to (one of: %s)", baseNames()),
	)

	cobraCmd.Flags().BoolVar(
		&c.Explain,
		"explain",
		false,
		"Show each step of the conversion",
	)

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *ConvertCmd) longDescription() string {
	return "Converts a non-negative integer between binary, octal, decimal and hexadecimal.\n\n" +
		"Base names are case-insensitive. Hexadecimal digits may be given in either case, " +
		"results are always written in uppercase.\n\n" +
		"Use --explain to show how the value is expanded from the source base " +
		"and how repeated division produces the target digits."
}

func (c *ConvertCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	logger, err := c.Logger()
	if err != nil {
		return err
	}

	converter, err := c.converterFactory(logger)
	if err != nil {
		return fmt.Errorf("failed to create converter: %w", err)
	}

	req, err := domain.NewConversionRequest(args[0], c.From, c.To)
	if err != nil {
		return handler.HandleError(err)
	}

	convert := converter.Convert
	if c.Explain {
		convert = converter.Explain
	}

	conv, err := convert(req)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(conv)
}

// baseNames returns the supported base names as a comma separated string.
func baseNames() string {
	bases := domain.Bases()
	names := make([]string, 0, len(bases))
	for _, b := range bases {
		names = append(names, b.String())
	}
	return strings.Join(names, ", ")
}
