package options

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/config"
	"github.com/baseconv/baseconv/internal/contracts"
	"github.com/baseconv/baseconv/internal/radix"
)

// ConverterFactory creates the converter used by a command, once its logger is known.
type ConverterFactory func(logger hclog.Logger) (contracts.Converter, error)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	ConverterFactory  ConverterFactory
}

// DefaultConverterFactory creates a radix.Converter.
func DefaultConverterFactory(logger hclog.Logger) (contracts.Converter, error) {
	return radix.NewConverter(logger)
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		ConverterFactory:  DefaultConverterFactory,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if i == nil {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

func WithConverterFactory(f ConverterFactory) CmdOption {
	return func(o *CmdOptions) error {
		if f == nil {
			return fmt.Errorf("converter factory cannot be nil")
		}
		o.ConverterFactory = f
		return nil
	}
}
