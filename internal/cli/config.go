package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/mermaidspec/pkg/errors"
)

const configFileName = "config.toml"

// Config holds defaults read from the config file.
type Config struct {
	Direction string      `toml:"direction"`
	Markdown  bool        `toml:"markdown"`
	Workers   int         `toml:"workers"`
	Serve     ServeConfig `toml:"serve"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	SpecDir string `toml:"spec_dir"`
}

// configDir returns the config directory using XDG standard (~/.config/mermaidspec/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func displayConfigPath() string {
	return filepath.Join("$XDG_CONFIG_HOME", appName, configFileName)
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent. An explicit path must exist.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return Config{}, nil
	case errors.Is(err, fs.ErrNotExist):
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("ignoring unknown config keys", "path", path, "keys", strings.Join(keys, ", "))
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}
