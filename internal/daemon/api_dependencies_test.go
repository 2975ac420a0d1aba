package daemon

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseconv/baseconv/internal/radix"
)

func testConverter(t *testing.T) *radix.Converter {
	t.Helper()

	c, err := radix.NewConverter(hclog.NewNullLogger())
	require.NoError(t, err)
	return c
}

func TestDaemon_NewAPIDependencies(t *testing.T) {
	t.Parallel()

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), testConverter(t), DevAPIAddr)
	require.NoError(t, err)
	require.Equal(t, DevAPIAddr, deps.Addr)
	require.NotNil(t, deps.Converter)
	require.NotNil(t, deps.Logger)

	_, err = NewAPIDependencies(hclog.NewNullLogger(), nil, DevAPIAddr)
	require.EqualError(t, err, "converter cannot be nil")
}

func TestDaemon_APIDependencies_Validate(t *testing.T) {
	t.Parallel()

	var nilConverter *radix.Converter

	tests := []struct {
		name    string
		deps    APIDependencies
		wantErr string
	}{
		{
			name: "valid dependencies",
			deps: APIDependencies{
				Logger:    hclog.NewNullLogger(),
				Converter: testConverter(t),
				Addr:      "localhost:8090",
			},
		},
		{
			name: "nil logger",
			deps: APIDependencies{
				Logger:    nil,
				Converter: testConverter(t),
				Addr:      "localhost:8090",
			},
			wantErr: "logger cannot be nil",
		},
		{
			name: "nil converter",
			deps: APIDependencies{
				Logger:    hclog.NewNullLogger(),
				Converter: nil,
				Addr:      "localhost:8090",
			},
			wantErr: "converter cannot be nil",
		},
		{
			name: "typed nil converter",
			deps: APIDependencies{
				Logger:    hclog.NewNullLogger(),
				Converter: nilConverter,
				Addr:      "localhost:8090",
			},
			wantErr: "converter cannot be nil",
		},
		{
			name: "invalid address",
			deps: APIDependencies{
				Logger:    hclog.NewNullLogger(),
				Converter: testConverter(t),
				Addr:      "invalid-address",
			},
			wantErr: "invalid API address 'invalid-address': invalid address format: address invalid-address: missing port in address",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.deps.Validate()

			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestDaemon_IsValidAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{name: "valid host and port", addr: "localhost:8090"},
		{name: "valid IP and port", addr: "127.0.0.1:8090"},
		{name: "empty host with port", addr: ":8090"},
		{name: "default address", addr: DefaultAPIAddr},
		{name: "missing port", addr: "localhost", wantErr: true},
		{name: "invalid format", addr: "invalid-address", wantErr: true},
		{name: "empty port", addr: "localhost:", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := IsValidAddr(tc.addr)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
