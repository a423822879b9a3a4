package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/config"
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagDefine      = "define"
	FlagDefines     = "defines"
	FlagRoot        = "root"
	FlagDiff        = "diff"
	FlagDryRun      = "dry-run"
	FlagInteractive = "interactive"
	FlagMinify      = "minify"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDebug       = "debug"

	// Flag descriptions
	DescDefine      = "Define NAME=VALUE (repeatable; true/false become booleans, NAME alone means true)"
	DescDefines     = "JSON file with defines, applied before --define"
	DescRoot        = "Directory that $ROOT/ include paths resolve against"
	DescDiff        = "Print the lines changed between input and output"
	DescDryRun      = "Process without writing the output"
	DescInteractive = "Ask for every referenced define that is not set"
	DescMinify      = "Minify the resulting stylesheet"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress output"
	DescDebug       = "Enable debug logging"
)

var defineNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ParseDefineFlag parses one -D argument.
func ParseDefineFlag(arg string) (string, interface{}, error) {
	name, value, hasValue := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !defineNamePattern.MatchString(name) {
		return "", nil, fmt.Errorf("invalid define name: %q", name)
	}
	if !hasValue {
		return name, true, nil
	}
	switch value {
	case "true":
		return name, true, nil
	case "false":
		return name, false, nil
	default:
		return name, value, nil
	}
}

// buildDefines merges an optional defines file with -D arguments, later
// arguments overriding earlier ones.
func buildDefines(definesFile string, args []string) (preprocess.Defines, error) {
	defines := preprocess.Defines{}
	if definesFile != "" {
		loaded, err := config.LoadDefines(definesFile)
		if err != nil {
			return nil, err
		}
		defines = preprocess.Merge(defines, loaded)
	}

	overrides := preprocess.Defines{}
	for _, arg := range args {
		name, value, err := ParseDefineFlag(arg)
		if err != nil {
			return nil, err
		}
		overrides[name] = value
	}
	return preprocess.Merge(defines, overrides), nil
}
