// Package cssprefix prepares stylesheets for a build target: it inlines
// @import url(...) lines and, for Firefox targets, strips rules that use other
// vendors' prefixes. It works on lines, not on a CSS syntax tree.
package cssprefix

import (
	"fmt"
	"os"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// Known modes. Any other non-empty mode only inlines imports.
const (
	ModeFirefox    = "firefox"
	ModeMozcentral = "mozcentral"
)

// Options configures optional post-processing.
type Options struct {
	// Minify runs the result through esbuild's CSS minifier.
	Minify bool
}

// Preprocess reads source, inlines its imports, strips prefixed content for
// mode and writes the result to destination.
func Preprocess(mode, source, destination string) error {
	return PreprocessWithOptions(mode, source, destination, Options{})
}

// PreprocessWithOptions is Preprocess with post-processing options.
func PreprocessWithOptions(mode, source, destination string, opts Options) error {
	content, err := Transform(mode, source, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destination, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destination, err)
	}
	debug.Debug("[cssprefix] wrote %s (%d bytes)", destination, len(content))
	return nil
}

// Transform returns the processed content of source without writing it.
func Transform(mode, source string, opts Options) (string, error) {
	if mode == "" {
		return "", &Error{Type: InvalidMode, Message: "invalid CSS preprocessor mode", File: source}
	}
	debug.Debug("[cssprefix] Transform: mode=%s, source=%s, minify=%v", mode, source, opts.Minify)

	data, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	content, err := ExpandImports(string(data), source)
	if err != nil {
		return "", err
	}

	if filter := FilterFor(mode); filter != nil {
		content = RemovePrefixed(content, filter)
	}

	if opts.Minify {
		content, err = minify(content, source)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// minify compacts a stylesheet with esbuild.
func minify(content, source string) (string, error) {
	result := api.Transform(content, api.TransformOptions{
		Loader:           api.LoaderCSS,
		Sourcefile:       source,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		LogLevel:         api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", &Error{
			Type:    MinifyFailed,
			Message: "minification failed: " + strings.Join(msgs, "; "),
			File:    source,
		}
	}
	return string(result.Code), nil
}
