package config

import (
	"fmt"
	"os"
)

// Template returns the starter config content.
func Template() string {
	return configTemplate
}

// WriteTemplate writes the starter config to path. Without overwrite, an
// existing file is an error.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}

const configTemplate = `artifact_root = "/"
log_level = "info"
`
