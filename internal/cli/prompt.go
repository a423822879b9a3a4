package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/preprocess"
)

// askBool is replaced in tests.
var askBool = func(message, help string) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
		Help:    help,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// PromptForDefines asks a yes/no question for each name and returns the answers.
func PromptForDefines(names []string) (preprocess.Defines, error) {
	defines := preprocess.Defines{}
	if len(names) == 0 {
		return defines, nil
	}

	fmt.Println()
	fmt.Println("Please provide values for undefined defines:")
	fmt.Println()

	for _, name := range names {
		help := fmt.Sprintf("%s is referenced by a directive but not defined; pass -D %s=VALUE to skip this question", name, name)
		value, err := askBool(name, help)
		if err != nil {
			return nil, fmt.Errorf("failed to prompt for define %q: %w", name, err)
		}
		defines[name] = value
	}
	return defines, nil
}
