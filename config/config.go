// Package config registers every configuration key with its default and loads the
// configuration file and environment through viper.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/where"
)

// EnvKeyReplacer maps configuration keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads tubemux.toml from
// the config directory when it exists.
func Setup() error {
	viper.SetConfigName(constant.Tubemux)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Tubemux)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return nil
	}
	return err
}
