package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/baseconv/baseconv/internal/perms"
)

// skeleton is written by Init, with every setting commented out so defaults apply.
const skeleton = `# baseconv configuration.

[daemon.api]
# addr = "0.0.0.0:8090"

[daemon.api.timeout]
# shutdown = "5s"

[daemon.api.cors]
# enable = false
# allow_origins = ["http://localhost:3000"]
`

// Init creates the base skeleton configuration file for baseconv.
func (d *DefaultLoader) Init(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(skeleton), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load decodes and validates the configuration file at path.
// A missing file returns an error wrapping ErrConfigNotFound.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w (%s), run: 'baseconv init'", ErrConfigLoadFailed, ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate existing config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	// Track the path that loaded this file.
	cfg.configFilePath = path

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Daemon == nil {
		return nil
	}
	return c.Daemon.Validate()
}
