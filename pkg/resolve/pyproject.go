package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const pyprojectFile = "pyproject.toml"

type pyproject struct {
	Tool struct {
		PyrightAction struct {
			Version string `toml:"version"`
		} `toml:"pyright-action"`
	} `toml:"tool"`
}

// pyprojectVersion reads [tool.pyright-action] version from dir/pyproject.toml.
// A missing file or key yields "".
func pyprojectVersion(dir string) (string, error) {
	path := filepath.Join(dir, pyprojectFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}

	var cfg pyproject
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return "", fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg.Tool.PyrightAction.Version, nil
}
