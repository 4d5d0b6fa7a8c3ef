package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// configFileName is the optional per-project configuration file.
const configFileName = ".denoup.toml"

// fileConfig mirrors the .denoup.toml layout. Command-line flags override
// anything set here.
type fileConfig struct {
	Update struct {
		Include         string `toml:"include"`
		Force           bool   `toml:"force"`
		AllowPrerelease bool   `toml:"allow_prerelease"`
	} `toml:"update"`
	Minimums map[string]string `toml:"minimums"`
}

// loadConfig reads .denoup.toml from dir. A missing file is not an error
// and yields the zero config.
func loadConfig(dir string) (fileConfig, error) {
	var cfg fileConfig
	path := filepath.Join(dir, configFileName)
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
