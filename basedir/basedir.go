// Package basedir exposes the data directories defined by the
// [XDG Base Directory Specification]
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/0.8/
package basedir

import (
	"github.com/mitchellh/go-homedir"
	"os"
	"path/filepath"
	"strings"
)

var (
	// DataHome is a single base directory relative to which user-specific data files should be
	// written. This directory is defined by the environment variable $XDG_DATA_HOME.
	// It is empty when neither $XDG_DATA_HOME nor a home directory could be determined.
	DataHome string

	// DataDirs is a set of preference ordered base directories relative to which data files should
	// be searched. This set of directories is defined by the environment variable $XDG_DATA_DIRS.
	DataDirs []string

	// Home is the user's home directory. It is empty if it could not be determined.
	Home string
)

func init() {
	Reinit()
}

// Reinit reinitializes the basedir values. Use this if you change XDG environment variables.
func Reinit() {
	// $HOME is read on every call so tests and callers can change it.
	homedir.DisableCache = true
	home, err := homedir.Dir()
	if err != nil {
		home = ""
	}

	dataHomeDefault := ""
	if home != "" {
		dataHomeDefault = filepath.Join(home, ".local/share")
	}

	DataDirs = listVar("XDG_DATA_DIRS", []string{"/usr/local/share/", "/usr/share/"})
	DataHome = singleVar("XDG_DATA_HOME", dataHomeDefault)
	Home = home
}

func singleVar(envName string, defaultValue string) string {
	envValue := os.Getenv(envName)
	if envValue == "" || !filepath.IsAbs(envValue) {
		return defaultValue
	}

	return envValue
}

func listVar(envName string, defaultValue []string) []string {
	envValue := os.Getenv(envName)
	if envValue == "" {
		return defaultValue
	}

	result := make([]string, 0)
	for _, path := range strings.Split(envValue, ":") {
		if path == "" || !filepath.IsAbs(path) {
			continue
		}

		result = append(result, path)
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
