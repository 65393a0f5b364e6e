package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadFileConfig decodes a TOML config file on top of the defaults, so a file
// that sets only a few keys keeps the rest of the defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}
