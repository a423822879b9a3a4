package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Manifest describes one build: the defines shared by every step and the
// copy, preprocess and preprocessCSS steps, run in that order.
type Manifest struct {
	// Root is the anchor for "$ROOT/" includes, relative to the manifest.
	Root string `json:"root"`
	// Defines holds the values visible to #if conditions and #expand.
	Defines map[string]interface{} `json:"defines"`
	// Copy lists files or directories copied verbatim.
	Copy []FileMapping `json:"copy"`
	// Preprocess lists files (or glob patterns) run through the line preprocessor.
	Preprocess []FileMapping `json:"preprocess"`
	// PreprocessCSS lists stylesheets run through the CSS prefix stripper.
	PreprocessCSS []CSSMapping `json:"preprocessCSS"`
	// MinifyCSS minifies every PreprocessCSS output.
	MinifyCSS bool `json:"minifyCSS"`

	// Dir is the directory containing the manifest file.
	Dir string `json:"-"`
}

// FileMapping is a [source, destination] pair.
type FileMapping struct {
	Source      string
	Destination string
}

// CSSMapping is a [mode, source, destination] triple.
type CSSMapping struct {
	Mode        string
	Source      string
	Destination string
}

// UnmarshalJSON accepts ["src", "dst"] or {"source": ..., "destination": ...}.
func (m *FileMapping) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("expected [source, destination], got %d element(s)", len(pair))
		}
		m.Source, m.Destination = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected [source, destination] or object: %w", err)
	}
	m.Source, m.Destination = obj.Source, obj.Destination
	return nil
}

// MarshalJSON writes the array form.
func (m FileMapping) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{m.Source, m.Destination})
}

// UnmarshalJSON accepts ["mode", "src", "dst"] or an object with mode/source/destination.
func (m *CSSMapping) UnmarshalJSON(data []byte) error {
	var triple []string
	if err := json.Unmarshal(data, &triple); err == nil {
		if len(triple) != 3 {
			return fmt.Errorf("expected [mode, source, destination], got %d element(s)", len(triple))
		}
		m.Mode, m.Source, m.Destination = triple[0], triple[1], triple[2]
		return nil
	}

	var obj struct {
		Mode        string `json:"mode"`
		Source      string `json:"source"`
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected [mode, source, destination] or object: %w", err)
	}
	m.Mode, m.Source, m.Destination = obj.Mode, obj.Source, obj.Destination
	return nil
}

// MarshalJSON writes the array form.
func (m CSSMapping) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{m.Mode, m.Source, m.Destination})
}

// ResolvePath makes p relative to the manifest directory. A trailing
// separator, which marks a destination directory, is preserved.
func (m *Manifest) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	resolved := filepath.Join(m.Dir, p)
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		resolved += string(filepath.Separator)
	}
	return resolved
}

// RootDir returns the resolved root anchor.
func (m *Manifest) RootDir() string {
	return m.ResolvePath(m.Root)
}
