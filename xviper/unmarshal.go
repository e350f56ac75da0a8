// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import "github.com/spf13/viper"

type defaulter interface {
	SetDefault(string, interface{})
}

// Defaults is a map of configuration keys onto their default values
type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}

type keyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// UnmarshalKeys unmarshals a series of keys, stopping at the first error.  The targets
// map keys onto pointers to the structures to be populated.
func UnmarshalKeys(u keyUnmarshaler, targets map[string]interface{}) error {
	for key, target := range targets {
		if err := u.UnmarshalKey(key, target); err != nil {
			return err
		}
	}

	return nil
}
