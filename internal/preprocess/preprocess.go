// Package preprocess implements the line-oriented conditional preprocessor used
// by the build: comment-embedded #if/#elif/#else/#endif chains, #expand,
// #include and #error directives evaluated against a set of defines.
package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// newlinePattern splits input into lines. CRLF input produces LF output.
var newlinePattern = regexp.MustCompile(`\r?\n`)

// LineFunc receives each produced output line.
type LineFunc func(line string)

// Options configures a Preprocessor.
type Options struct {
	// RootDir is the anchor for "$ROOT/" include paths.
	// Empty means DefaultRootDir().
	RootDir string
}

// Preprocessor runs the directive state machine over input files.
// It holds no per-run state and may be reused.
type Preprocessor struct {
	rootDir string
}

// NewPreprocessor creates a Preprocessor.
func NewPreprocessor(opts Options) *Preprocessor {
	root := opts.RootDir
	if root == "" {
		root = DefaultRootDir()
	}
	return &Preprocessor{rootDir: root}
}

// RootDir returns the anchor used for "$ROOT/" includes.
func (p *Preprocessor) RootDir() string {
	return p.rootDir
}

// PreprocessFile processes inPath and overwrites outPath with the result.
// On failure outPath is left untouched.
func (p *Preprocessor) PreprocessFile(inPath, outPath string, defines Defines) error {
	debug.Debug("[preprocess] PreprocessFile: %s -> %s", inPath, outPath)
	out, err := p.Render(inPath, defines)
	if err != nil {
		return err
	}
	return WriteLines(outPath, out)
}

// Render processes inPath and returns the produced lines.
func (p *Preprocessor) Render(inPath string, defines Defines) ([]string, error) {
	var out []string
	err := p.Preprocess(inPath, func(line string) {
		out = append(out, line)
	}, defines)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteLines overwrites path with lines joined by "\n".
func WriteLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	debug.Debug("[preprocess] wrote %d line(s) to %s", len(lines), path)
	return nil
}

// Preprocess processes inPath and delivers every output line to emit.
func (p *Preprocessor) Preprocess(inPath string, emit LineFunc, defines Defines) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	file := realPath(inPath)
	debug.Debug("[preprocess] Preprocess: file=%s, size=%d bytes", file, len(content))

	lines := newlinePattern.Split(string(content), -1)
	cond := &conditionalStack{}
	loc := Location{File: file}

	for i, line := range lines {
		loc.Line = i + 1

		d, ok := ScanDirective(line)
		if !ok {
			switch {
			case cond.State() == StateNone:
				emit(line)
			case !cond.State().suppressed() && !cond.ancestorSuppressed():
				emit(uncomment(line))
			}
			continue
		}

		debug.Debug("[preprocess] %s: #%s state=%s depth=%d", loc, d.Type, cond.State(), cond.Depth())
		switch d.Type {
		case DirectiveIf:
			ok, err := evaluateCondition(d.Args, defines, loc)
			if err != nil {
				return err
			}
			cond.If(ok)
		case DirectiveElif:
			err := cond.Elif(loc, func() (bool, error) {
				return evaluateCondition(d.Args, defines, loc)
			})
			if err != nil {
				return err
			}
		case DirectiveElse:
			if err := cond.Else(loc); err != nil {
				return err
			}
		case DirectiveEndif:
			if err := cond.Endif(loc); err != nil {
				return err
			}
		case DirectiveExpand:
			if cond.Active() {
				emit(expandVariables(d.Args, defines))
			}
		case DirectiveInclude:
			if cond.Active() {
				if err := p.include(d.Args, loc, emit, defines); err != nil {
					return err
				}
			}
		case DirectiveError:
			if cond.Active() {
				return newError(ErrorDirective, "found #error "+d.Args, loc)
			}
		}
	}

	if !cond.Balanced() {
		return &Error{
			Type:    UnbalancedDirective,
			Message: "missing #endif in preprocessor",
			File:    file,
		}
	}
	return nil
}

// evaluateCondition evaluates the argument of #if or #elif.
func evaluateCondition(code string, defines Defines, loc Location) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, newError(EmptyExpression, "no expression given", loc)
	}
	v, err := Evaluate(code, defines)
	if err != nil {
		e := newError(Evaluation, fmt.Sprintf("could not evaluate %q", code), loc)
		e.Cause = err
		return false, e
	}
	return Truthy(v), nil
}

// realPath resolves symlinks in path, falling back to the absolute or given path.
func realPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// DefaultRootDir returns the directory two levels above the running executable.
func DefaultRootDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Join(filepath.Dir(realPath(exe)), "..", "..")
}
