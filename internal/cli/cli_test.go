package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

func TestParseDefineFlag(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantName  string
		wantValue interface{}
		wantErr   bool
	}{
		{name: "bare name", arg: "GENERIC", wantName: "GENERIC", wantValue: true},
		{name: "true", arg: "TESTING=true", wantName: "TESTING", wantValue: true},
		{name: "false", arg: "MOZCENTRAL=false", wantName: "MOZCENTRAL", wantValue: false},
		{name: "string", arg: "VERSION=1.2.3", wantName: "VERSION", wantValue: "1.2.3"},
		{name: "empty value", arg: "EMPTY=", wantName: "EMPTY", wantValue: ""},
		{name: "value with equals", arg: "Q=a=b", wantName: "Q", wantValue: "a=b"},
		{name: "invalid name", arg: "1ABC=x", wantErr: true},
		{name: "empty name", arg: "=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, err := ParseDefineFlag(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDefineFlag(%q) expected error", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDefineFlag(%q) error = %v", tt.arg, err)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("ParseDefineFlag(%q) = %q, %v; want %q, %v", tt.arg, name, value, tt.wantName, tt.wantValue)
			}
		})
	}
}

func TestBuildDefines(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "defines.json")
	if err := os.WriteFile(file, []byte(`{"GENERIC": true, "VERSION": "1.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := buildDefines(file, []string{"VERSION=2.0", "TESTING"})
	if err != nil {
		t.Fatalf("buildDefines() error = %v", err)
	}
	want := preprocess.Defines{"GENERIC": true, "VERSION": "2.0", "TESTING": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildDefines() mismatch (-want +got):\n%s", diff)
	}

	if _, err := buildDefines(filepath.Join(dir, "missing.json"), nil); err == nil {
		t.Error("buildDefines() expected error for missing defines file")
	}
	if _, err := buildDefines("", []string{"bad-name"}); err == nil {
		t.Error("buildDefines() expected error for invalid name")
	}
}

func TestPromptForDefines(t *testing.T) {
	original := askBool
	defer func() { askBool = original }()

	var asked []string
	askBool = func(message, help string) (bool, error) {
		asked = append(asked, message)
		return message == "GENERIC", nil
	}

	got, err := PromptForDefines([]string{"GENERIC", "MOZCENTRAL"})
	if err != nil {
		t.Fatalf("PromptForDefines() error = %v", err)
	}
	want := preprocess.Defines{"GENERIC": true, "MOZCENTRAL": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PromptForDefines() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GENERIC", "MOZCENTRAL"}, asked); diff != "" {
		t.Errorf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptForDefines_Error(t *testing.T) {
	original := askBool
	defer func() { askBool = original }()

	askBool = func(message, help string) (bool, error) {
		return false, errors.New("interrupt")
	}
	if _, err := PromptForDefines([]string{"GENERIC"}); err == nil {
		t.Error("PromptForDefines() expected error")
	}
}

func TestPromptForDefines_Empty(t *testing.T) {
	got, err := PromptForDefines(nil)
	if err != nil {
		t.Fatalf("PromptForDefines() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("PromptForDefines(nil) = %v, want empty", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := map[string]bool{"preprocess": false, "css": false, "build": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRunPreprocessCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.js")
	output := filepath.Join(dir, "out.js")
	src := "//#if GENERIC\nvar a = 1;\n//#else\nvar a = 2;\n//#endif\n"
	if err := os.WriteFile(input, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	globalQuiet = true
	defer func() { globalQuiet = false }()

	rootCmd.SetArgs([]string{"preprocess", input, output, "-D", "GENERIC"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("preprocess command error = %v", err)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "var a = 1;\n" {
		t.Errorf("output = %q, want %q", got, "var a = 1;\n")
	}
}

func TestWriteVersion(t *testing.T) {
	info := VersionInfo{
		Version:    "1.2.3",
		Commit:     "abc123",
		BuildDate:  "2026-01-02",
		GoVersion:  "go1.25.4",
		Platform:   "linux/amd64",
		Directives: []string{"#if", "#endif"},
		CSSModes:   []string{"firefox"},
	}
	defer func() { versionShort, versionJSON = false, false }()

	t.Run("text", func(t *testing.T) {
		versionShort, versionJSON = false, false
		var buf bytes.Buffer
		if err := writeVersion(&buf, info); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"builder 1.2.3 (abc123, built 2026-01-02)", "directives: #if #endif", "css modes:  firefox"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("short", func(t *testing.T) {
		versionShort, versionJSON = true, false
		var buf bytes.Buffer
		if err := writeVersion(&buf, info); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "1.2.3\n" {
			t.Errorf("output = %q, want %q", buf.String(), "1.2.3\n")
		}
	})

	t.Run("json", func(t *testing.T) {
		versionShort, versionJSON = false, true
		var buf bytes.Buffer
		if err := writeVersion(&buf, info); err != nil {
			t.Fatal(err)
		}
		var got VersionInfo
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if diff := cmp.Diff(info, got); diff != "" {
			t.Errorf("decoded mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCurrentVersionInfoListsDirectives(t *testing.T) {
	info := currentVersionInfo()
	if len(info.Directives) != len(preprocess.DirectiveTypes) || info.Directives[0] != "#if" {
		t.Errorf("Directives = %v", info.Directives)
	}
	if diff := cmp.Diff([]string{"firefox", "mozcentral"}, info.CSSModes); diff != "" {
		t.Errorf("CSSModes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBuildCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("//#if GENERIC\n//generic();\n//#endif\n"), 0644); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(dir, "builder.json")
	if err := os.WriteFile(manifest, []byte(`{"defines": {"GENERIC": false}, "preprocess": [["app.js", "build/app.js"]]}`), 0644); err != nil {
		t.Fatal(err)
	}

	globalQuiet = true
	defer func() { globalQuiet = false }()

	rootCmd.SetArgs([]string{"build", manifest, "-D", "GENERIC=true"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build command error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "build", "app.js"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "  generic();\n" {
		t.Errorf("output = %q, want %q", got, "  generic();\n")
	}
}
