// Package datafile reads the static JSON/YAML files loaded at startup.
package datafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Read decodes path into v. A missing file is not an error: found is false
// and v is left untouched. The format follows the extension (.yaml/.yml,
// everything else is JSON).
func Read(path string, v any) (found bool, err error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, v)
	default:
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		return true, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}
