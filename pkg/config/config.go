// Package config merges the optional yaml config file, command-line
// flags and BOUT_* environment variables into one Config. Precedence
// is flags over environment over file.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Account overrides the names written to the QIF account header for
// one profile.
type Account struct {
	Account string `mapstructure:"account"`
	Bank    string `mapstructure:"bank"`
}

type Config struct {
	Profile  string             `mapstructure:"profile"`
	Password string             `mapstructure:"password"`
	Debug    bool               `mapstructure:"debug"`
	Output   string             `mapstructure:"output"`
	Accounts map[string]Account `mapstructure:"accounts"`
}

// Build loads configuration. A .env file is applied first so secrets
// like BOUT_PASSWORD can live outside the shell history; a missing
// .env or config.yaml is not an error, but an explicitly named config
// file must exist.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("BOUT")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// AccountFor returns the account and bank names to write for a
// profile, preferring the config file overrides over the given
// profile defaults.
func (c *Config) AccountFor(name, account, bank string) (string, string) {
	override, ok := c.Accounts[name]
	if !ok {
		return account, bank
	}
	if override.Account != "" {
		account = override.Account
	}
	if override.Bank != "" {
		bank = override.Bank
	}
	return account, bank
}
