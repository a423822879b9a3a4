package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/app"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

func TestBuild_ExtensionFixture(t *testing.T) {
	projectDir := copyFixtureToTemp(t, "extension", t.TempDir())

	result, err := app.Build(context.Background(), app.BuildOptions{
		ManifestPath: filepath.Join(projectDir, "builder.json"),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(result.Copied) != 2 {
		t.Errorf("Copied = %v, want 2 entries", result.Copied)
	}
	if len(result.Preprocessed) != 2 {
		t.Errorf("Preprocessed = %v, want 2 entries", result.Preprocessed)
	}
	if len(result.Stylesheets) != 1 {
		t.Errorf("Stylesheets = %v, want 1 entry", result.Stylesheets)
	}

	t.Run("copy", func(t *testing.T) {
		if got := readFile(t, projectDir, "build/manifest.json"); !strings.Contains(got, `"CRX Viewer"`) {
			t.Errorf("manifest.json not copied, got %q", got)
		}
		if got := readFile(t, projectDir, "build/images/logo.png"); got != "PNG\n" {
			t.Errorf("logo.png = %q, want %q", got, "PNG\n")
		}
	})

	t.Run("javascript", func(t *testing.T) {
		want := strings.Join([]string{
			`"use strict";`,
			`function noop() {}`,
			``,
			`const target = "mozcentral";`,
			`const version = "4.2.0";`,
			``,
		}, "\n")
		if diff := cmp.Diff(want, readFile(t, projectDir, "build/app.js")); diff != "" {
			t.Errorf("build/app.js mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("html", func(t *testing.T) {
		want := strings.Join([]string{
			`<!DOCTYPE html>`,
			`<html>`,
			`<link rel="resource" href="resource://pdf.js/viewer.properties">`,
			`<script src="viewer.js"></script>`,
			`</html>`,
			``,
		}, "\n")
		if diff := cmp.Diff(want, readFile(t, projectDir, "build/viewer.html")); diff != "" {
			t.Errorf("build/viewer.html mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stylesheet", func(t *testing.T) {
		got := readFile(t, projectDir, "build/viewer.css")
		for _, gone := range []string{"@import", "-webkit-transform", "-moz-box-sizing", "-moz-grab"} {
			if strings.Contains(got, gone) {
				t.Errorf("viewer.css still contains %q:\n%s", gone, got)
			}
		}
		for _, kept := range []string{".toolbar {", "display: flex;", ".page {", "transform: none;"} {
			if !strings.Contains(got, kept) {
				t.Errorf("viewer.css missing %q:\n%s", kept, got)
			}
		}
	})
}

func TestBuild_DefineOverrideTriggersError(t *testing.T) {
	projectDir := copyFixtureToTemp(t, "extension", t.TempDir())

	_, err := app.Build(context.Background(), app.BuildOptions{
		ManifestPath: filepath.Join(projectDir, "builder.json"),
		Defines:      preprocess.Defines{"MOZCENTRAL": false},
	})
	if err == nil {
		t.Fatal("Build expected to fail on #error")
	}

	var appErr *app.AppError
	if !errors.As(err, &appErr) || appErr.Type != app.PreprocessFailed {
		t.Errorf("error = %v, want PreprocessFailed AppError", err)
	}
	if !preprocess.IsErrorType(err, preprocess.ErrorDirective) {
		t.Errorf("error = %v, want ErrorDirective in chain", err)
	}
	if !strings.Contains(err.Error(), "found #error this file requires MOZCENTRAL") {
		t.Errorf("error message = %q", err.Error())
	}

	// Steps after the failing one are not run.
	if _, err := os.Stat(filepath.Join(projectDir, "build", "viewer.html")); !os.IsNotExist(err) {
		t.Errorf("viewer.html should not be written, stat error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, "build", "viewer.css")); !os.IsNotExist(err) {
		t.Errorf("viewer.css should not be written, stat error = %v", err)
	}
}

func TestBuild_RootOverride(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := copyFixtureToTemp(t, "extension", tempDir)

	// A root without src/shared makes the $ROOT/ include fail.
	emptyRoot := filepath.Join(tempDir, "empty-root")
	if err := os.MkdirAll(emptyRoot, 0755); err != nil {
		t.Fatal(err)
	}

	_, err := app.Build(context.Background(), app.BuildOptions{
		ManifestPath: filepath.Join(projectDir, "builder.json"),
		RootDir:      emptyRoot,
	})
	if !preprocess.IsErrorType(err, preprocess.IncludeNotFound) {
		t.Fatalf("error = %v, want IncludeNotFound", err)
	}
}

func TestBuild_CanceledContext(t *testing.T) {
	projectDir := copyFixtureToTemp(t, "extension", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := app.Build(ctx, app.BuildOptions{
		ManifestPath: filepath.Join(projectDir, "builder.json"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
