package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/cssprefix"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// PreprocessOptions contains options for preprocessing one file.
type PreprocessOptions struct {
	// Input is the file to preprocess.
	Input string
	// Output is the file to overwrite.
	Output string
	// Defines holds the condition and expansion values.
	Defines preprocess.Defines
	// RootDir is the "$ROOT/" anchor (optional).
	RootDir string
	// Diff computes the changed lines between input and output.
	Diff bool
	// DryRun skips writing Output.
	DryRun bool
}

// StylesheetOptions contains options for preprocessing one stylesheet.
type StylesheetOptions struct {
	// Mode is the build target, e.g. "firefox" or "mozcentral".
	Mode string
	// Source is the stylesheet to read.
	Source string
	// Destination is the file to overwrite.
	Destination string
	// Minify compacts the result.
	Minify bool
	// Diff computes the changed lines between source and result.
	Diff bool
	// DryRun skips writing Destination.
	DryRun bool
}

// FileResult describes a single-file workflow outcome.
type FileResult struct {
	// Output is the written path, empty for dry runs.
	Output string
	// Lines is the number of produced lines.
	Lines int
	// Diff holds the changed lines when requested.
	Diff string
}

// PreprocessFile runs the line preprocessor over one file.
func PreprocessFile(ctx context.Context, opts PreprocessOptions) (*FileResult, error) {
	debug.DebugSection("[app] Preprocess workflow start")
	debug.DebugValue("[app] Input", opts.Input)
	debug.DebugValue("[app] Output", opts.Output)

	if opts.Input == "" {
		return nil, NewValidationError("invalid preprocess options", fmt.Errorf("input path is required"))
	}
	if opts.Output == "" && !opts.DryRun {
		return nil, NewValidationError("invalid preprocess options", fmt.Errorf("output path is required"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defines := opts.Defines
	if defines == nil {
		defines = preprocess.Defines{}
	}
	pp := preprocess.NewPreprocessor(preprocess.Options{RootDir: opts.RootDir})
	debug.DebugValue("[app] Root", pp.RootDir())

	out, err := pp.Render(opts.Input, defines)
	if err != nil {
		return nil, NewAppError(PreprocessFailed, fmt.Sprintf("failed to preprocess %s", opts.Input), err)
	}

	result := &FileResult{Lines: len(out)}
	if opts.Diff {
		before, err := os.ReadFile(opts.Input)
		if err != nil {
			return nil, NewAppError(PreprocessFailed, "failed to read input for diff", err)
		}
		result.Diff = Diff(string(before), strings.Join(out, "\n"))
	}
	if !opts.DryRun {
		if err := preprocess.WriteLines(opts.Output, out); err != nil {
			return nil, NewAppError(PreprocessFailed, fmt.Sprintf("failed to write %s", opts.Output), err)
		}
		result.Output = opts.Output
	}
	return result, nil
}

// PreprocessStylesheet runs the CSS prefix stripper over one stylesheet.
func PreprocessStylesheet(ctx context.Context, opts StylesheetOptions) (*FileResult, error) {
	debug.DebugSection("[app] Stylesheet workflow start")
	debug.DebugValue("[app] Mode", opts.Mode)
	debug.DebugValue("[app] Source", opts.Source)
	debug.DebugValue("[app] Destination", opts.Destination)

	if opts.Source == "" {
		return nil, NewValidationError("invalid stylesheet options", fmt.Errorf("source path is required"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := cssprefix.Transform(opts.Mode, opts.Source, cssprefix.Options{Minify: opts.Minify})
	if err != nil {
		return nil, NewAppError(StylesheetFailed, fmt.Sprintf("failed to preprocess %s", opts.Source), err)
	}

	result := &FileResult{Lines: strings.Count(content, "\n") + 1}
	if opts.Diff {
		before, err := os.ReadFile(opts.Source)
		if err != nil {
			return nil, NewAppError(StylesheetFailed, "failed to read source for diff", err)
		}
		result.Diff = Diff(string(before), content)
	}
	if !opts.DryRun {
		if err := os.WriteFile(opts.Destination, []byte(content), 0644); err != nil {
			return nil, NewAppError(StylesheetFailed, fmt.Sprintf("failed to write %s", opts.Destination), err)
		}
		result.Output = opts.Destination
	}
	return result, nil
}

// MissingDefines returns the names referenced by input's directives that
// defines does not provide.
func MissingDefines(input string, defines preprocess.Defines) ([]string, error) {
	names, err := preprocess.ExtractDefines(input)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, name := range names {
		if _, ok := defines[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
