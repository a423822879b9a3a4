package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/cssprefix"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the builder version, the build it came from and the
directives and CSS modes it understands.

Examples:
  builder version
  builder version --short
  builder version --json`,
	RunE: runVersion,
}

// Version command flags
var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
}

// VersionInfo describes the running builder.
type VersionInfo struct {
	Version    string   `json:"version"`
	Commit     string   `json:"commit"`
	BuildDate  string   `json:"buildDate"`
	GoVersion  string   `json:"goVersion"`
	Platform   string   `json:"platform"`
	Directives []string `json:"directives"`
	CSSModes   []string `json:"cssModes"`
}

func currentVersionInfo() VersionInfo {
	directives := make([]string, 0, len(preprocess.DirectiveTypes))
	for _, d := range preprocess.DirectiveTypes {
		directives = append(directives, "#"+d.String())
	}
	return VersionInfo{
		Version:    Version,
		Commit:     GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Directives: directives,
		CSSModes:   []string{cssprefix.ModeFirefox, cssprefix.ModeMozcentral},
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	return writeVersion(cmd.OutOrStdout(), currentVersionInfo())
}

func writeVersion(w io.Writer, info VersionInfo) error {
	switch {
	case versionShort:
		_, err := fmt.Fprintln(w, info.Version)
		return err
	case versionJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("failed to encode version info: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintf(w, "builder %s (%s, built %s)\n%s %s\ndirectives: %s\ncss modes:  %s\n",
		info.Version, info.Commit, info.BuildDate,
		info.GoVersion, info.Platform,
		strings.Join(info.Directives, " "),
		strings.Join(info.CSSModes, " "))
	return err
}
