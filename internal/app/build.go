package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/config"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/cssprefix"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// BuildOptions contains options for running a build manifest.
type BuildOptions struct {
	// ManifestPath is the path to the build manifest.
	ManifestPath string
	// Defines override the manifest defines key by key.
	Defines preprocess.Defines
	// RootDir overrides the manifest root anchor (optional).
	RootDir string
}

// BuildResult summarizes a completed build.
type BuildResult struct {
	// Copied lists the copied destinations.
	Copied []string
	// Preprocessed lists the written preprocessor outputs.
	Preprocessed []string
	// Stylesheets lists the written CSS outputs.
	Stylesheets []string
}

// Build runs the copy, preprocess and preprocessCSS steps of a manifest in order.
// The first failing step aborts the build; earlier outputs stay on disk.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	debug.DebugSection("[app] Build workflow start")
	debug.DebugValue("[app] Manifest", opts.ManifestPath)

	if opts.ManifestPath == "" {
		return nil, NewValidationError("invalid build options", fmt.Errorf("manifest path is required"))
	}

	loader := config.NewLoader()
	manifest, err := loader.Load(opts.ManifestPath)
	if err != nil {
		debug.Debug("[app] Failed to load manifest: %v", err)
		return nil, NewAppError(BuildFailed, "failed to load build manifest", err)
	}

	// Overrides must satisfy the same rules as manifest defines.
	manifest.Defines = preprocess.Merge(manifest.Defines, opts.Defines)
	if err := loader.Validate(manifest); err != nil {
		return nil, NewValidationError("invalid build defines", err)
	}
	defines := preprocess.Defines(manifest.Defines)
	debug.DebugValue("[app] Defines", defines.Names())

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = manifest.RootDir()
	}
	pp := preprocess.NewPreprocessor(preprocess.Options{RootDir: rootDir})
	debug.DebugValue("[app] Root", pp.RootDir())

	result := &BuildResult{}

	for _, c := range manifest.Copy {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, dst := manifest.ResolvePath(c.Source), manifest.ResolvePath(c.Destination)
		debug.Debug("[app] copy %s -> %s", src, dst)
		written, err := copyPath(src, dst)
		if err != nil {
			return nil, NewAppError(CopyFailed, fmt.Sprintf("failed to copy %s", c.Source), err)
		}
		result.Copied = append(result.Copied, written)
	}

	for _, p := range manifest.Preprocess {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sources, err := expandSources(manifest.ResolvePath(p.Source))
		if err != nil {
			return nil, NewAppError(PreprocessFailed, fmt.Sprintf("invalid source pattern %s", p.Source), err)
		}
		for _, src := range sources {
			dst, err := destinationFor(src, manifest.ResolvePath(p.Destination))
			if err != nil {
				return nil, NewAppError(PreprocessFailed, fmt.Sprintf("failed to prepare %s", p.Destination), err)
			}
			debug.Debug("[app] preprocess %s -> %s", src, dst)
			if err := pp.PreprocessFile(src, dst, defines); err != nil {
				return nil, NewAppError(PreprocessFailed, fmt.Sprintf("failed to preprocess %s", src), err)
			}
			result.Preprocessed = append(result.Preprocessed, dst)
		}
	}

	for _, c := range manifest.PreprocessCSS {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := manifest.ResolvePath(c.Source)
		dst, err := destinationFor(src, manifest.ResolvePath(c.Destination))
		if err != nil {
			return nil, NewAppError(StylesheetFailed, fmt.Sprintf("failed to prepare %s", c.Destination), err)
		}
		debug.Debug("[app] preprocessCSS mode=%s %s -> %s", c.Mode, src, dst)
		err = cssprefix.PreprocessWithOptions(c.Mode, src, dst, cssprefix.Options{Minify: manifest.MinifyCSS})
		if err != nil {
			return nil, NewAppError(StylesheetFailed, fmt.Sprintf("failed to preprocess %s", src), err)
		}
		result.Stylesheets = append(result.Stylesheets, dst)
	}

	debug.Debug("[app] Build complete: %d copied, %d preprocessed, %d stylesheet(s)",
		len(result.Copied), len(result.Preprocessed), len(result.Stylesheets))
	return result, nil
}

// expandSources expands a glob pattern. A pattern without matches is returned
// as-is so the missing file is reported by the step itself.
func expandSources(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []string{pattern}, nil
	}
	return matches, nil
}

// destinationFor returns the output path for src. A destination that is an
// existing directory or ends with a separator receives src's base name.
// Parent directories are created.
func destinationFor(src, dst string) (string, error) {
	if isDirTarget(dst) {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return "", err
		}
		return filepath.Join(dst, filepath.Base(src)), nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	return dst, nil
}

func isDirTarget(dst string) bool {
	if strings.HasSuffix(dst, "/") || strings.HasSuffix(dst, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(dst)
	return err == nil && info.IsDir()
}
