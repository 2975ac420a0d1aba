package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/baseconv/baseconv/internal/cmd"
	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/config"
	"github.com/baseconv/baseconv/internal/daemon"
	"github.com/baseconv/baseconv/internal/flags"
)

const (
	flagDev                = "dev"
	flagAddr               = "addr"
	flagCORSEnable         = "cors-enable"
	flagCORSOrigin         = "cors-origin"
	flagCORSMethod         = "cors-allow-method"
	flagCORSHeader         = "cors-allow-header"
	flagCORSExposeHeader   = "cors-expose-header"
	flagCORSCredentials    = "cors-allow-credentials"
	flagCORSMaxAge         = "cors-max-age"
	flagTimeoutAPIShutdown = "timeout-api-shutdown"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Dev              bool
	Addr             string
	CORSEnable       bool
	CORSOrigins      []string
	CORSMethods      []string
	CORSHeaders      []string
	CORSExposeHeader []string
	CORSCredentials  bool
	CORSMaxAge       time.Duration
	ShutdownTimeout  time.Duration
	cfgLoader        config.Loader
	converterFactory cmdopts.ConverterFactory
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	_, cobraCommand, err := newDaemonCmd(baseCmd, opt...)
	return cobraCommand, err
}

func newDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*DaemonCmd, *cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, nil, err
	}

	c := &DaemonCmd{
		BaseCmd:          baseCmd,
		cfgLoader:        opts.ConfigLoader,
		converterFactory: opts.ConverterFactory,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--dev] [--addr]",
		Short: "Launches the conversion API and web page",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cobraCommand.Flags().BoolVar(
		&c.Dev,
		flagDev,
		false,
		"Run the daemon in development-focused mode",
	)

	cobraCommand.Flags().StringVar(
		&c.Addr,
		flagAddr,
		daemon.DefaultAPIAddr,
		"Address for the daemon to bind (not applicable in --dev mode)",
	)

	cobraCommand.Flags().BoolVar(
		&c.CORSEnable,
		flagCORSEnable,
		false,
		"Enable CORS for the API",
	)

	cobraCommand.Flags().StringArrayVar(
		&c.CORSOrigins,
		flagCORSOrigin,
		nil,
		"Allowed CORS origin (can be repeated)",
	)

	cobraCommand.Flags().StringArrayVar(
		&c.CORSMethods,
		flagCORSMethod,
		nil,
		"Allowed CORS request method (can be repeated)",
	)

	cobraCommand.Flags().StringArrayVar(
		&c.CORSHeaders,
		flagCORSHeader,
		nil,
		"Allowed CORS request header (can be repeated)",
	)

	cobraCommand.Flags().StringArrayVar(
		&c.CORSExposeHeader,
		flagCORSExposeHeader,
		nil,
		"Response header exposed to CORS clients (can be repeated)",
	)

	cobraCommand.Flags().BoolVar(
		&c.CORSCredentials,
		flagCORSCredentials,
		daemon.DefaultCORSAllowCredentials(),
		"Allow credentials in CORS requests",
	)

	cobraCommand.Flags().DurationVar(
		&c.CORSMaxAge,
		flagCORSMaxAge,
		daemon.DefaultCORSMaxAge(),
		"How long browsers may cache CORS preflight responses",
	)

	cobraCommand.Flags().DurationVar(
		&c.ShutdownTimeout,
		flagTimeoutAPIShutdown,
		daemon.DefaultAPIShutdownTimeout(),
		"Time allowed for in-flight requests to complete on shutdown",
	)

	cobraCommand.MarkFlagsMutuallyExclusive(flagDev, flagAddr)

	return c, cobraCommand, nil
}

func (c *DaemonCmd) longDescription() string {
	return fmt.Sprintf(
		"Launches the conversion HTTP API, its OpenAPI docs and the converter web page.\n\n"+
			"Settings are read from the [daemon.api] section of %s when it exists, "+
			"flags take precedence over the configuration file.",
		flags.DefaultConfigFile,
	)
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	srv, addr, err := c.apiServer(cobraCmd, logger)
	if err != nil {
		return err
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := srv.Start(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	// Print --dev mode banner if required.
	if c.Dev {
		logger.Info("Launching daemon in dev mode", "addr", addr)
		banner := fmt.Sprintf("baseconv daemon running in 'dev' mode.\n\n"+
			"  Converter:\thttp://%s/\n"+
			"  Local API:\thttp://%s/api/v1\n"+
			"  OpenAPI UI:\thttp://%s/docs\n"+
			"  Config file:\t%s\n",
			addr, addr, addr, flags.ConfigFile)

		if flags.LogPath != "" {
			banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
		}

		banner += "\nPress Ctrl+C to stop.\n\n"
		_, _ = fmt.Fprint(cobraCmd.OutOrStdout(), banner)
	}

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		err := <-runErr // Wait for cleanup and deferred logging.
		return err      // Graceful Ctrl+C / SIGTERM.
	case err := <-runErr:
		logger.Error("daemon exited with error", "error", err)
		return err // Propagate daemon failure.
	}
}

// apiServer creates the API server from the configuration file and flags, returning it with its bind address.
func (c *DaemonCmd) apiServer(cobraCmd *cobra.Command, logger hclog.Logger) (*daemon.APIServer, string, error) {
	cfg, err := c.loadConfig(logger)
	if err != nil {
		return nil, "", err
	}

	addr, apiOpts := c.serverSettings(cobraCmd, cfg.APIOrDefault(), logger)
	if err := daemon.IsValidAddr(addr); err != nil {
		return nil, "", err
	}

	converter, err := c.converterFactory(logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create converter: %w", err)
	}

	deps, err := daemon.NewAPIDependencies(logger, converter, addr)
	if err != nil {
		return nil, "", fmt.Errorf("error configuring baseconv daemon: %w", err)
	}

	srv, err := daemon.NewAPIServer(deps, apiOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create baseconv daemon instance: %w", err)
	}

	return srv, addr, nil
}

// loadConfig loads the configuration file, a missing file is treated as an empty configuration.
func (c *DaemonCmd) loadConfig(logger hclog.Logger) (*config.Config, error) {
	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if errors.Is(err, config.ErrConfigNotFound) {
		logger.Debug("No config file found, using defaults", "path", flags.ConfigFile)
		return &config.Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// serverSettings resolves the bind address and API options.
// Precedence is: explicitly set flags, then the configuration file, then defaults.
func (c *DaemonCmd) serverSettings(
	cobraCmd *cobra.Command,
	section *config.APIConfigSection,
	logger hclog.Logger,
) (string, []daemon.APIOption) {
	addr := strings.TrimSpace(c.Addr)
	if section != nil && section.Addr != nil && !cobraCmd.Flags().Changed(flagAddr) {
		addr = strings.TrimSpace(*section.Addr)
	}

	// Override address for dev mode.
	if c.Dev {
		logger.Info("Development-focused mode", "addr", addr, "override", daemon.DevAPIAddr)
		addr = daemon.DevAPIAddr
	}

	apiOpts := []daemon.APIOption{daemon.WithAPIConfig(section)}

	if cobraCmd.Flags().Changed(flagCORSEnable) {
		apiOpts = append(apiOpts, daemon.WithCORSEnabled(c.CORSEnable))
	}
	if cobraCmd.Flags().Changed(flagCORSOrigin) {
		apiOpts = append(apiOpts, daemon.WithCORSAllowOrigins(c.CORSOrigins))
	}
	if cobraCmd.Flags().Changed(flagCORSMethod) {
		apiOpts = append(apiOpts, daemon.WithCORSAllowMethods(c.CORSMethods))
	}
	if cobraCmd.Flags().Changed(flagCORSHeader) {
		apiOpts = append(apiOpts, daemon.WithCORSAllowHeaders(c.CORSHeaders))
	}
	if cobraCmd.Flags().Changed(flagCORSExposeHeader) {
		apiOpts = append(apiOpts, daemon.WithCORSExposeHeaders(c.CORSExposeHeader))
	}
	if cobraCmd.Flags().Changed(flagCORSCredentials) {
		apiOpts = append(apiOpts, daemon.WithCORSAllowCredentials(c.CORSCredentials))
	}
	if cobraCmd.Flags().Changed(flagCORSMaxAge) {
		apiOpts = append(apiOpts, daemon.WithCORSMaxAge(c.CORSMaxAge))
	}
	if cobraCmd.Flags().Changed(flagTimeoutAPIShutdown) {
		apiOpts = append(apiOpts, daemon.WithShutdownTimeout(c.ShutdownTimeout))
	}

	return addr, apiOpts
}
