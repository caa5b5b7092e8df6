package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/bequest/errors"
)

// Config is read from the config.toml file in the home directory. Command
// line flags take precedence over the file values.
type Config struct {
	Home          string `toml:"home"`
	LogLevel      string `toml:"log_level"`
	DefaultTicker string `toml:"default_ticker"`
	Debug         bool   `toml:"debug"`
}

func defaultConfig() Config {
	home := os.Getenv("WILLCLI_HOME")
	if home == "" {
		home = filepath.Join(os.Getenv("HOME"), ".willcli")
	}
	return Config{
		Home:          home,
		LogLevel:      "info",
		DefaultTicker: "IOV",
	}
}

// loadConfig overlays the defaults with the content of the file. A missing
// file is not an error.
func loadConfig(path string, cfg Config) (Config, error) {
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	return cfg, nil
}

func saveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return f.Close()
}
