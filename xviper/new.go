// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag = "name"
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetEnvPrefix sets the environment prefix and maps nested keys, so that log.level
// is read from PREFIX_LOG_LEVEL.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		if fs == nil {
			return nil
		}

		return v.BindPFlags(fs)
	}
}

// BindConfigFlags applies BindConfig using the DefaultFileFlag and DefaultNameFlag flags.
func BindConfigFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		if fs != nil {
			BindConfig(v, fs, DefaultFileFlag, DefaultNameFlag)
		}

		return nil
	}
}

// WithDefaults applies a set of default values.
func WithDefaults(d Defaults) Option {
	return func(v *viper.Viper) error {
		ApplyDefaults(v, d)
		return nil
	}
}

// ReadInConfig reads the configuration file.  When optional is true, a configuration file
// that cannot be found is not an error, which allows running purely from flags and the environment.
func ReadInConfig(optional bool) Option {
	return func(v *viper.Viper) error {
		err := v.ReadInConfig()
		if optional {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
		}

		return err
	}
}

// StdOptions produces the standard configuration sequence for a command: the standard
// configuration paths, an environment prefix derived from the application name, command line
// flags, and any configuration file named by the file or name flags.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		AddStandardConfigPaths(v, applicationName)

		_, err := Configure(
			v,
			SetEnvPrefix(strings.ToUpper(applicationName)),
			AutomaticEnv,
			SetConfigName(applicationName),
			BindPFlags(fs),
			BindConfigFlags(fs),
		)

		return err
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
