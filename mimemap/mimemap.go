// Package mimemap loads the mime_map.toml file which maps MIME types to the commands that open
// them.
//
// The file is a table of tables. Top-level keys are MIME top-level types, their keys are
// subtypes and the values are commands:
//
//	[text]
//	html = "firefox --new-tab"
//	plain = "foot -e nvim"
//
//	[image]
//	png = "imv"
package mimemap

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/MatthiasKunnen/xdg-open/basedir"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvFile is the environment variable that, when set, holds the exact path of the map file.
	EnvFile = "MIME_MAP_FILE"

	// FileName is the name of the map file inside the data directory.
	FileName = "mime_map.toml"
)

// Map maps a MIME top-level type to a map of subtype to command.
type Map map[string]map[string]string

// ConfigError is returned when the map file cannot be read or parsed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	var parseErr toml.ParseError
	if errors.As(e.Err, &parseErr) {
		return fmt.Sprintf("mime map %s: line %d: %s", e.Path, parseErr.Position.Line, parseErr.Message)
	}

	return fmt.Sprintf("mime map %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Location returns the path of the map file.
// $MIME_MAP_FILE takes precedence. Otherwise, the file is expected in $XDG_DATA_HOME. If no data
// directory is known, the current working directory is used.
func Location() string {
	if path := os.Getenv(EnvFile); path != "" {
		return path
	}

	if path, ok := basedir.DataFile(FileName); ok {
		return path
	}

	return filepath.Join(".", FileName)
}

// Load loads the map file found at [Location].
func Load() (Map, error) {
	return LoadFile(Location())
}

// LoadFile loads the map file at path.
// All errors are of type *[ConfigError].
func LoadFile(path string) (Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer file.Close()

	m, err := Parse(file)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return m, nil
}

// Parse decodes a map file.
// Every top-level value must be a table and every value in those tables must be a string.
func Parse(reader io.Reader) (Map, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, err
	}

	result := make(Map, len(raw))
	for top, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse mime map: %s: expected a table of subtypes, got %T", top, value)
		}

		subtypes := make(map[string]string, len(table))
		for sub, action := range table {
			command, ok := action.(string)
			if nested, isTable := action.(map[string]any); isTable {
				return nil, fmt.Errorf(
					"parse mime map: %s/%s: expected a command string, got a table; "+
						"quote subtypes that contain dots, e.g. %q = \"...\"",
					top, sub, dottedKey(sub, nested),
				)
			}
			if !ok {
				return nil, fmt.Errorf("parse mime map: %s/%s: expected a command string, got %T", top, sub, action)
			}

			subtypes[sub] = command
		}

		result[top] = subtypes
	}

	return result, nil
}

// dottedKey reconstructs the first dotted key that TOML split into nested tables.
func dottedKey(prefix string, table map[string]any) string {
	for key, value := range table {
		if nested, ok := value.(map[string]any); ok {
			return dottedKey(prefix+"."+key, nested)
		}
		return prefix + "." + key
	}

	return prefix
}

// Lookup returns the command for the top and subtype of mime.
// ok is false when either level is missing.
func (m Map) Lookup(mime mimetype.MimeType) (command string, ok bool) {
	subtypes, ok := m[strings.ToLower(mime.Top)]
	if !ok {
		return "", false
	}

	command, ok = subtypes[strings.ToLower(mime.Subtype)]
	return command, ok
}
