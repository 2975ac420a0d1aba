package config

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .baseconv.toml file structure.
type Config struct {
	// Daemon holds settings for the 'daemon' command.
	Daemon *DaemonConfig `json:"daemon,omitempty" toml:"daemon,omitempty" yaml:"daemon,omitempty"`

	configFilePath string `toml:"-"`
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.configFilePath
}

// APIOrDefault returns the API section of the daemon configuration, or nil when it is not configured.
func (c *Config) APIOrDefault() *APIConfigSection {
	if c == nil || c.Daemon == nil {
		return nil
	}
	return c.Daemon.API
}
