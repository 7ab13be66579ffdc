// Package config holds corekbd's kong CLI definitions and the config
// file discovery/template-generation helpers that back them, adapted
// from the teacher's layered JSON/YAML/TOML configuration loader.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDir returns the platform-specific configuration directory
// for corekbd.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "corekbd"), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "corekbd"), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "corekbd"), nil
		}
		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// CandidatePaths builds per-format candidate config-file paths, in
// priority order: an explicit user path first, then the working
// directory, then the user config dir, then (on non-Windows) /etc.
func CandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "corekbd.json"))
	add(&yamlPaths, filepath.Join(wd, "corekbd.yaml"))
	add(&yamlPaths, filepath.Join(wd, "corekbd.yml"))
	add(&tomlPaths, filepath.Join(wd, "corekbd.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if runtime.GOOS != "windows" {
		add(&jsonPaths, filepath.Join("/etc/corekbd", "config.json"))
		add(&yamlPaths, filepath.Join("/etc/corekbd", "config.yaml"))
		add(&yamlPaths, filepath.Join("/etc/corekbd", "config.yml"))
		add(&tomlPaths, filepath.Join("/etc/corekbd", "config.toml"))
	}

	return
}
