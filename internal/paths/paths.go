package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// AppDir returns ~/.taskdeck.
func AppDir() string {
	return filepath.Join(home(), ".taskdeck")
}

// ConfigFile returns ~/.taskdeck/config.yaml.
func ConfigFile() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// LogFile returns ~/.taskdeck/taskdeck.log.
func LogFile() string {
	return filepath.Join(AppDir(), "taskdeck.log")
}
