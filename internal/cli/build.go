package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/app"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/config"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [manifest]",
	Short: "Run the steps of a build manifest",
	Long: `Run the copy, preprocess and preprocessCSS steps of a build manifest
(default: builder.json) in order. Relative paths in the manifest resolve
against the manifest's directory. The first failing step stops the build.

Examples:
  builder build
  builder build targets/firefox.json -D TESTING=true
  builder build --root ../pdf.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

// Build command flags
var (
	buildDefineArgs  []string
	buildDefinesFile string
	buildRoot        string
)

func init() {
	buildCmd.Flags().StringArrayVarP(&buildDefineArgs, FlagDefine, "D", nil, DescDefine)
	buildCmd.Flags().StringVar(&buildDefinesFile, FlagDefines, "", DescDefines)
	buildCmd.Flags().StringVar(&buildRoot, FlagRoot, "", DescRoot)
}

func runBuild(cmd *cobra.Command, args []string) error {
	manifest := config.DefaultManifestName
	if len(args) > 0 {
		manifest = args[0]
	}

	defines, err := buildDefines(buildDefinesFile, buildDefineArgs)
	if err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Building %s", manifest))
	result, err := app.Build(cmd.Context(), app.BuildOptions{
		ManifestPath: manifest,
		Defines:      defines,
		RootDir:      buildRoot,
	})
	if err != nil {
		printErrorMsg("Build failed")
		return err
	}

	for _, path := range result.Copied {
		printInfo(fmt.Sprintf("  copied       %s", path))
	}
	for _, path := range result.Preprocessed {
		printInfo(fmt.Sprintf("  preprocessed %s", path))
	}
	for _, path := range result.Stylesheets {
		printInfo(fmt.Sprintf("  stylesheet   %s", path))
	}
	printSuccess(fmt.Sprintf("Build complete: %d copied, %d preprocessed, %d stylesheets",
		len(result.Copied), len(result.Preprocessed), len(result.Stylesheets)))
	return nil
}
