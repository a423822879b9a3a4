package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/app"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess <input> <output>",
	Short: "Evaluate preprocessor directives in a source file",
	Long: `Evaluate line-oriented directives in <input> and write the result to <output>.

Directives are written inside "//" or "<!-- -->" comments:
  //#if EXPR, //#elif EXPR, //#else, //#endif   conditional sections
  //#expand __NAME__                            substitute define values
  //#include FILE                              inline another file
  //#error MESSAGE                             fail the build

Include paths starting with "$ROOT/" resolve against --root; other paths
resolve against the directory of the including file.

Examples:
  builder preprocess src/app.js build/app.js -D GENERIC -D VERSION=1.2
  builder preprocess web/viewer.html build/viewer.html --defines defines.json
  builder preprocess src/app.js build/app.js -D MOZCENTRAL=false --diff --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runPreprocess,
}

// Preprocess command flags
var (
	preprocessDefines     []string
	preprocessDefinesFile string
	preprocessRoot        string
	preprocessInteractive bool
	preprocessDiff        bool
	preprocessDryRun      bool
)

func init() {
	preprocessCmd.Flags().StringArrayVarP(&preprocessDefines, FlagDefine, "D", nil, DescDefine)
	preprocessCmd.Flags().StringVar(&preprocessDefinesFile, FlagDefines, "", DescDefines)
	preprocessCmd.Flags().StringVar(&preprocessRoot, FlagRoot, "", DescRoot)
	preprocessCmd.Flags().BoolVarP(&preprocessInteractive, FlagInteractive, "i", false, DescInteractive)
	preprocessCmd.Flags().BoolVar(&preprocessDiff, FlagDiff, false, DescDiff)
	preprocessCmd.Flags().BoolVar(&preprocessDryRun, FlagDryRun, false, DescDryRun)
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	defines, err := buildDefines(preprocessDefinesFile, preprocessDefines)
	if err != nil {
		return err
	}
	debug.DebugValue("[cli] Defines", defines.Names())

	missing, err := app.MissingDefines(input, defines)
	if err != nil {
		return err
	}
	debug.DebugValue("[cli] Undefined names", missing)
	if len(missing) > 0 && preprocessInteractive {
		answers, err := PromptForDefines(missing)
		if err != nil {
			return err
		}
		defines = preprocess.Merge(defines, answers)
	} else {
		for _, name := range missing {
			printWarning(fmt.Sprintf("%s is not defined", name))
		}
	}

	if preprocessDryRun {
		printInfo("[DRY RUN] No file will be written")
	}

	result, err := app.PreprocessFile(cmd.Context(), app.PreprocessOptions{
		Input:   input,
		Output:  output,
		Defines: defines,
		RootDir: preprocessRoot,
		Diff:    preprocessDiff,
		DryRun:  preprocessDryRun,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Preprocessing %s failed", input))
		return err
	}

	if preprocessDiff {
		printDiff(result.Diff)
	}
	if result.Output != "" {
		printSuccess(fmt.Sprintf("Wrote %s (%d lines)", result.Output, result.Lines))
	} else {
		printInfo(fmt.Sprintf("Would write %s (%d lines)", output, result.Lines))
	}
	return nil
}
