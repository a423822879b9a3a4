package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/build"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// Version information, overridden by main from build-time variables.
var (
	Version   = build.Version()
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "builder",
	Short: "Source preprocessor for extension builds",
	Long: `builder prepares sources for a build target.

Use "builder preprocess" to evaluate //#if, //#elif, //#else, //#endif,
//#expand, //#include and //#error directives (also inside <!-- --> comments)
against a set of defines, "builder css" to inline @import rules and strip
vendor-prefixed CSS for Firefox targets, and "builder build" to run every
step listed in a builder.json manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
