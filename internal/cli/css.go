package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/app"
)

// cssCmd represents the css command
var cssCmd = &cobra.Command{
	Use:   "css <mode> <source> <destination>",
	Short: "Inline imports and strip vendor-prefixed CSS",
	Long: `Inline "@import url(...);" rules of <source> recursively, then drop
every line that uses a vendor prefix the target does not need.

Modes:
  firefox      drop -ms-, -o- and -webkit- prefixed lines
  mozcentral   additionally drop -moz-box-sizing, -moz-grab and -moz-grabbing
  other        inline imports only

Examples:
  builder css firefox web/viewer.css build/viewer.css
  builder css mozcentral web/viewer.css build/viewer.css --minify`,
	Args: cobra.ExactArgs(3),
	RunE: runCSS,
}

// CSS command flags
var (
	cssMinify bool
	cssDiff   bool
	cssDryRun bool
)

func init() {
	cssCmd.Flags().BoolVar(&cssMinify, FlagMinify, false, DescMinify)
	cssCmd.Flags().BoolVar(&cssDiff, FlagDiff, false, DescDiff)
	cssCmd.Flags().BoolVar(&cssDryRun, FlagDryRun, false, DescDryRun)
}

func runCSS(cmd *cobra.Command, args []string) error {
	mode, source, destination := args[0], args[1], args[2]

	if cssDryRun {
		printInfo("[DRY RUN] No file will be written")
	}

	result, err := app.PreprocessStylesheet(cmd.Context(), app.StylesheetOptions{
		Mode:        mode,
		Source:      source,
		Destination: destination,
		Minify:      cssMinify,
		Diff:        cssDiff,
		DryRun:      cssDryRun,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Stylesheet %s failed", source))
		return err
	}

	if cssDiff {
		printDiff(result.Diff)
	}
	if result.Output != "" {
		printSuccess(fmt.Sprintf("Wrote %s (%s)", result.Output, mode))
	} else {
		printInfo(fmt.Sprintf("Would write %s (%s)", destination, mode))
	}
	return nil
}
