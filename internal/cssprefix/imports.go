package cssprefix

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// importPattern matches a line consisting of a single @import url(...) statement.
var importPattern = regexp.MustCompile(`(?m)^\s*@import\s+url\(([^)]+)\);\s*$`)

// ExpandImports replaces every @import url(...) line of content with the
// recursively expanded content of the referenced file. References resolve
// relative to the directory of baseFile. Cyclic imports are not detected.
func ExpandImports(content, baseFile string) (string, error) {
	matches := importPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		url := strings.Trim(strings.TrimSpace(content[m[2]:m[3]]), `"'`)
		file := filepath.Join(filepath.Dir(baseFile), url)
		debug.Debug("[cssprefix] import: %s -> %s", url, file)

		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		imported, err := ExpandImports(string(data), file)
		if err != nil {
			return "", err
		}

		b.WriteString(content[last:m[0]])
		b.WriteString(imported)
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), nil
}
