package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// Loader defines the interface for loading build manifests.
type Loader interface {
	// Load loads a manifest from the specified file path.
	Load(path string) (*Manifest, error)
	// Validate validates the manifest.
	Validate(m *Manifest) error
}

// FileLoader implements the Loader interface for JSON manifests.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads a manifest from the specified file path.
func (l *FileLoader) Load(path string) (*Manifest, error) {
	debug.Debug("[config] Loading manifest: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "manifest not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read manifest", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
	}
	mergeDefaults(&m)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m.Dir = filepath.Dir(abs)

	if err := l.validate(path, &m); err != nil {
		return nil, err
	}
	debug.Debug("[config] Manifest loaded: %d copy, %d preprocess, %d css step(s)",
		len(m.Copy), len(m.Preprocess), len(m.PreprocessCSS))
	return &m, nil
}

// Validate validates the manifest.
func (l *FileLoader) Validate(m *Manifest) error {
	return l.validate("", m)
}

func (l *FileLoader) validate(file string, m *Manifest) error {
	return validateManifest(file, m)
}

// LoadDefines loads a JSON object of defines from path.
func LoadDefines(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "defines file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read defines file", err)
	}

	var defines map[string]interface{}
	if err := json.Unmarshal(data, &defines); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax in defines file", err)
	}
	if defines == nil {
		defines = map[string]interface{}{}
	}
	return defines, nil
}
