// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	MistralAPIKey     string        `mapstructure:"MISTRAL_API_KEY"`
	MistralModel      string        `mapstructure:"MISTRAL_MODEL"`
	MistralBaseURL    string        `mapstructure:"MISTRAL_BASE_URL"`
	GatewayTimeout    time.Duration `mapstructure:"GATEWAY_TIMEOUT"`
	ChatHistoryWindow int           `mapstructure:"CHAT_HISTORY_WINDOW"`
	ServerAddress     string        `mapstructure:"SERVER_ADDRESS"`
	Environement      string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("MISTRAL_MODEL", "mistral-small")
	viper.SetDefault("MISTRAL_BASE_URL", "https://api.mistral.ai")
	viper.SetDefault("GATEWAY_TIMEOUT", 30*time.Second)
	viper.SetDefault("CHAT_HISTORY_WINDOW", 0)
	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		// Config file is optional: environment variables alone are enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
