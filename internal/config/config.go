package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the user configuration read from config.toml.
type Config struct {
	// Theme is the catppuccin flavour: mocha, macchiato, frappe or latte.
	Theme string `toml:"theme"`
	// IDStrategy picks the field id generator: uuid, snowflake or sequence.
	IDStrategy string        `toml:"id_strategy"`
	ExportPath string        `toml:"export_path"`
	Preview    PreviewConfig `toml:"preview"`
}

type PreviewConfig struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

func Default() Config {
	return Config{
		Theme:      "mocha",
		IDStrategy: "uuid",
		Preview: PreviewConfig{
			Format: "json",
			Indent: 2,
		},
	}
}

// DefaultPath returns the config file path under the user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppID, fileName), nil
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Preview.Indent < 0 || c.Preview.Indent > 8 {
		return fmt.Errorf("%w: preview.indent must be between 0 and 8, got %d", ErrInvalidConfig, c.Preview.Indent)
	}
	return nil
}
