package cmd

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	cmdopts "github.com/baseconv/baseconv/internal/cmd/options"
	"github.com/baseconv/baseconv/internal/config"
	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/daemon"
)

// mockConfigLoader implements config.Loader for testing.
type mockConfigLoader struct {
	cfg *config.Config
	err error
}

func (m *mockConfigLoader) Load(_ string) (*config.Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg, nil
}

func notFoundLoader() *mockConfigLoader {
	return &mockConfigLoader{err: fmt.Errorf("%w: %w", config.ErrConfigLoadFailed, config.ErrConfigNotFound)}
}

func ptr[T any](v T) *T {
	return &v
}

func newTestDaemonCmd(t *testing.T, loader config.Loader, args ...string) (*DaemonCmd, *cobra.Command) {
	t.Helper()

	c, cobraCmd, err := newDaemonCmd(testBaseCmd(), cmdopts.WithConfigLoader(loader))
	require.NoError(t, err)
	require.NoError(t, cobraCmd.ParseFlags(args))

	return c, cobraCmd
}

func resolveOptions(t *testing.T, c *DaemonCmd, cobraCmd *cobra.Command) (string, daemon.APIOptions) {
	t.Helper()

	cfg, err := c.loadConfig(hclog.NewNullLogger())
	require.NoError(t, err)

	addr, opts := c.serverSettings(cobraCmd, cfg.APIOrDefault(), hclog.NewNullLogger())
	apiOpts, err := daemon.NewAPIOptions(opts...)
	require.NoError(t, err)

	return addr, apiOpts
}

func TestDaemonCmd_ServerSettings_Defaults(t *testing.T) {
	t.Parallel()

	c, cobraCmd := newTestDaemonCmd(t, notFoundLoader())
	addr, opts := resolveOptions(t, c, cobraCmd)

	expected, err := daemon.NewAPIOptions()
	require.NoError(t, err)

	require.Equal(t, daemon.DefaultAPIAddr, addr)
	require.Equal(t, expected, opts)
}

func TestDaemonCmd_ServerSettings_ConfigFile(t *testing.T) {
	t.Parallel()

	loader := &mockConfigLoader{cfg: &config.Config{
		Daemon: &config.DaemonConfig{
			API: &config.APIConfigSection{
				Addr: ptr("localhost:9000"),
				Timeout: &config.APITimeoutConfigSection{
					Shutdown: ptr(config.Duration(10 * time.Second)),
				},
				CORS: &config.CORSConfigSection{
					Enable:  ptr(true),
					Origins: []string{"http://localhost:3000"},
				},
			},
		},
	}}

	c, cobraCmd := newTestDaemonCmd(t, loader)
	addr, opts := resolveOptions(t, c, cobraCmd)

	require.Equal(t, "localhost:9000", addr)
	require.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	require.True(t, opts.CORS.Enabled)
	require.Equal(t, []string{"http://localhost:3000"}, opts.CORS.AllowOrigins)
}

func TestDaemonCmd_ServerSettings_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	loader := &mockConfigLoader{cfg: &config.Config{
		Daemon: &config.DaemonConfig{
			API: &config.APIConfigSection{
				Addr: ptr("localhost:9000"),
				Timeout: &config.APITimeoutConfigSection{
					Shutdown: ptr(config.Duration(10 * time.Second)),
				},
				CORS: &config.CORSConfigSection{
					Enable:  ptr(true),
					Origins: []string{"http://localhost:3000"},
				},
			},
		},
	}}

	c, cobraCmd := newTestDaemonCmd(
		t,
		loader,
		"--addr", "127.0.0.1:7000",
		"--cors-origin", "https://example.com",
		"--cors-enable=false",
		"--timeout-api-shutdown", "3s",
	)
	addr, opts := resolveOptions(t, c, cobraCmd)

	require.Equal(t, "127.0.0.1:7000", addr)
	require.Equal(t, 3*time.Second, opts.ShutdownTimeout)
	require.False(t, opts.CORS.Enabled)
	require.Equal(t, []string{"https://example.com"}, opts.CORS.AllowOrigins)
}

func TestDaemonCmd_ServerSettings_CORSFlags(t *testing.T) {
	t.Parallel()

	loader := &mockConfigLoader{cfg: &config.Config{
		Daemon: &config.DaemonConfig{
			API: &config.APIConfigSection{
				CORS: &config.CORSConfigSection{
					Enable:      ptr(true),
					Methods:     []string{"GET"},
					Headers:     []string{"X-From-Config"},
					Credentials: ptr(false),
					MaxAge:      ptr(config.Duration(time.Minute)),
				},
			},
		},
	}}

	c, cobraCmd := newTestDaemonCmd(
		t,
		loader,
		"--cors-allow-method", "POST",
		"--cors-allow-method", "OPTIONS",
		"--cors-allow-header", "Content-Type",
		"--cors-expose-header", "X-Request-Id",
		"--cors-allow-credentials",
		"--cors-max-age", "2h",
	)
	_, opts := resolveOptions(t, c, cobraCmd)

	require.True(t, opts.CORS.Enabled)
	require.Equal(t, []string{"POST", "OPTIONS"}, opts.CORS.AllowMethods)
	require.Equal(t, []string{"Content-Type"}, opts.CORS.AllowedHeaders)
	require.Equal(t, []string{"X-Request-Id"}, opts.CORS.ExposedHeaders)
	require.True(t, opts.CORS.AllowCredentials)
	require.Equal(t, 2*time.Hour, opts.CORS.MaxAge)
}

func TestDaemonCmd_ServerSettings_DevMode(t *testing.T) {
	t.Parallel()

	loader := &mockConfigLoader{cfg: &config.Config{
		Daemon: &config.DaemonConfig{
			API: &config.APIConfigSection{Addr: ptr("0.0.0.0:9000")},
		},
	}}

	c, cobraCmd := newTestDaemonCmd(t, loader, "--dev")
	addr, _ := resolveOptions(t, c, cobraCmd)

	require.Equal(t, daemon.DevAPIAddr, addr)
}

func TestDaemonCmd_APIServer(t *testing.T) {
	t.Parallel()

	c, cobraCmd := newTestDaemonCmd(t, notFoundLoader(), "--addr", "localhost:0")

	srv, addr, err := c.apiServer(cobraCmd, hclog.NewNullLogger())
	require.NoError(t, err)
	require.NotNil(t, srv)
	require.Equal(t, "localhost:0", addr)
}

func TestDaemonCmd_APIServer_Errors(t *testing.T) {
	t.Parallel()

	failingFactory := func(_ hclog.Logger) (contracts.Converter, error) {
		return nil, fmt.Errorf("boom")
	}

	tests := []struct {
		name          string
		loader        config.Loader
		opts          []cmdopts.CmdOption
		args          []string
		expectedError string
	}{
		{
			name:          "config load error",
			loader:        &mockConfigLoader{err: fmt.Errorf("config load failed")},
			expectedError: "config load failed",
		},
		{
			name:          "invalid address",
			loader:        notFoundLoader(),
			args:          []string{"--addr", "nope"},
			expectedError: "invalid address format: address nope: missing port in address",
		},
		{
			name:          "invalid shutdown timeout",
			loader:        notFoundLoader(),
			args:          []string{"--timeout-api-shutdown", "0s"},
			expectedError: "failed to create baseconv daemon instance: invalid API options: shutdown timeout must be positive, got 0s",
		},
		{
			name:          "converter factory error",
			loader:        notFoundLoader(),
			opts:          []cmdopts.CmdOption{cmdopts.WithConverterFactory(failingFactory)},
			expectedError: "failed to create converter: boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]cmdopts.CmdOption{cmdopts.WithConfigLoader(tc.loader)}, tc.opts...)
			c, cobraCmd, err := newDaemonCmd(testBaseCmd(), opts...)
			require.NoError(t, err)
			require.NoError(t, cobraCmd.ParseFlags(tc.args))

			_, _, err = c.apiServer(cobraCmd, hclog.NewNullLogger())
			require.EqualError(t, err, tc.expectedError)
		})
	}
}

func TestDaemonCmd_DevAndAddrMutuallyExclusive(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewDaemonCmd(testBaseCmd(), cmdopts.WithConfigLoader(notFoundLoader()))
	require.NoError(t, err)

	cobraCmd.SetOut(&bytes.Buffer{})
	cobraCmd.SetErr(&bytes.Buffer{})
	cobraCmd.SetArgs([]string{"--dev", "--addr", "localhost:9000"})

	err = cobraCmd.Execute()
	require.Error(t, err)
	require.ErrorContains(t, err, "none of the others can be")
}
