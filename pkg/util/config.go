package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "IG"

// ReadConfig. read <name>.yaml from the given paths (default ./data/) into the global viper instance.
// a missing config file is not an error, defaults and IG_* env variables still apply.
func ReadConfig(name string, paths ...string) error {
	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./data/"}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}

	viper.SetEnvPrefix(ENV_PREFIX)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return WrapErrorf(err, ErrConfig, "fatal error config file")
	}
	return nil
}

func ConfigFileUsed() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	return fmt.Sprintf("<none, env prefix %s_>", ENV_PREFIX)
}
