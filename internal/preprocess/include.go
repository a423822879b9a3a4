package preprocess

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// RootMarker prefixes include paths that resolve against the root directory.
const RootMarker = "$ROOT/"

// include preprocesses file into the current sink.
func (p *Preprocessor) include(file string, loc Location, emit LineFunc, defines Defines) error {
	file = strings.TrimSpace(file)
	fullPath := p.resolveIncludePath(file, loc.File)
	debug.Debug("[preprocess] include: %s -> %s", file, fullPath)

	err := p.Preprocess(fullPath, emit, defines)
	if err == nil {
		return nil
	}
	var perr *Error
	if !errors.As(err, &perr) && errors.Is(err, fs.ErrNotExist) {
		return &Error{
			Type:    IncludeNotFound,
			Message: fmt.Sprintf("failed to include %q", file),
			File:    loc.File,
			Line:    loc.Line,
			Cause:   err,
		}
	}
	return err
}

// resolveIncludePath resolves an include reference.
// Supports:
// - "$ROOT/path": relative to the root directory
// - other paths: relative to the directory of the including file
func (p *Preprocessor) resolveIncludePath(file, currentFile string) string {
	if strings.HasPrefix(file, RootMarker) {
		return filepath.Join(p.rootDir, strings.TrimPrefix(file, RootMarker))
	}
	return filepath.Join(filepath.Dir(realPath(currentFile)), file)
}
