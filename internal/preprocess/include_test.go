package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIncludeRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/part.js", "//#if GENERIC\n//generic part\n//#endif")
	in := writeFile(t, dir, "src/main.js", lines("before", "//#include part.js", "after"))
	out := filepath.Join(dir, "out.js")

	p := NewPreprocessor(Options{RootDir: filepath.Join(dir, "unused")})
	if err := p.PreprocessFile(in, out, Defines{"GENERIC": true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if diff := cmp.Diff(lines("before", "  generic part", "after"), string(data)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "foo.txt", "from root")
	writeFile(t, root, "deep/nested/foo.txt", "from nested dir")
	in := writeFile(t, root, "deep/nested/main.txt", "<!--#include $ROOT/foo.txt-->\n<!-- #include foo.txt -->")

	var got []string
	p := NewPreprocessor(Options{RootDir: root})
	err := p.Preprocess(in, func(line string) { got = append(got, line) }, Defines{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"from root", "from nested dir"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "real/part.txt", "part")
	target := writeFile(t, dir, "real/main.txt", "//#include part.txt")
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var got []string
	p := NewPreprocessor(Options{RootDir: dir})
	if err := p.Preprocess(link, func(line string) { got = append(got, line) }, Defines{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"part"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeSkippedInFalseBranch(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "main.js", lines("//#if A", "//#include missing.js", "//#endif"))

	p := NewPreprocessor(Options{RootDir: dir})
	if err := p.Preprocess(in, func(string) {}, Defines{"A": false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncludeNotFound(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "main.js", lines("a", "//#include missing.js"))

	p := NewPreprocessor(Options{RootDir: dir})
	err := p.Preprocess(in, func(string) {}, Defines{})
	if !IsErrorType(err, IncludeNotFound) {
		t.Fatalf("expected IncludeNotFound, got: %v", err)
	}
	perr := err.(*Error)
	if perr.Line != 2 || !strings.HasSuffix(perr.File, "main.js") {
		t.Errorf("unexpected location %s:%d", perr.File, perr.Line)
	}
	if !strings.Contains(err.Error(), `"missing.js"`) {
		t.Errorf("error should name the include: %v", err)
	}
}

func TestNestedIncludeErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inner.js", "//#if true\n")
	in := writeFile(t, dir, "main.js", "//#include inner.js")

	p := NewPreprocessor(Options{RootDir: dir})
	err := p.Preprocess(in, func(string) {}, Defines{})
	if !IsErrorType(err, UnbalancedDirective) {
		t.Fatalf("expected UnbalancedDirective from the included file, got: %v", err)
	}
	if !strings.Contains(err.Error(), "inner.js") {
		t.Errorf("error should name the included file: %v", err)
	}
}

func TestIncludeOtherIOErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "adir"), 0755); err != nil {
		t.Fatal(err)
	}
	in := writeFile(t, dir, "main.js", "//#include adir")

	p := NewPreprocessor(Options{RootDir: dir})
	err := p.Preprocess(in, func(string) {}, Defines{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if IsErrorType(err, IncludeNotFound) {
		t.Errorf("reading a directory must not be reported as IncludeNotFound: %v", err)
	}
}
