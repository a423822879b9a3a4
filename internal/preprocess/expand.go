package preprocess

import "regexp"

var variablePattern = regexp.MustCompile(`__\w+__`)

// expandVariables replaces every __NAME__ token in line with the text of the
// corresponding define, or with nothing if NAME is undefined.
func expandVariables(line string, defines Defines) string {
	return variablePattern.ReplaceAllStringFunc(line, func(token string) string {
		return defines.Text(token[2 : len(token)-2])
	})
}
