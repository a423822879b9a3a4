package preprocess

import (
	"regexp"
)

// DirectiveType identifies the type of preprocessor directive.
type DirectiveType int

const (
	// DirectiveIf represents #if EXPR
	DirectiveIf DirectiveType = iota
	// DirectiveElif represents #elif EXPR
	DirectiveElif
	// DirectiveElse represents #else
	DirectiveElse
	// DirectiveEndif represents #endif
	DirectiveEndif
	// DirectiveExpand represents #expand LINE
	DirectiveExpand
	// DirectiveInclude represents #include PATH
	DirectiveInclude
	// DirectiveError represents #error MESSAGE
	DirectiveError
)

// String returns the string representation of the directive type.
func (dt DirectiveType) String() string {
	switch dt {
	case DirectiveIf:
		return "if"
	case DirectiveElif:
		return "elif"
	case DirectiveElse:
		return "else"
	case DirectiveEndif:
		return "endif"
	case DirectiveExpand:
		return "expand"
	case DirectiveInclude:
		return "include"
	case DirectiveError:
		return "error"
	default:
		return "unknown"
	}
}

// Directive is a control line recognized inside a comment.
type Directive struct {
	// Type is the directive type.
	Type DirectiveType
	// Args is the text following the directive name, without a closing "-->".
	Args string
	// RawText is the complete line.
	RawText string
}

var (
	// Pattern: [ws] (// | <!--) [ws] #NAME [ws ARGS [-->]]
	directivePattern = regexp.MustCompile(`^\s*(?://|<!--)\s*#(if|elif|else|endif|expand|include|error)\b(?:\s+(.*?)(?:-->)?$)?`)

	// Layer of comment markup removed from lines inside an active branch.
	commentOpenPattern  = regexp.MustCompile(`^(?://|<!--)`)
	commentClosePattern = regexp.MustCompile(`-->$`)
)

// ScanDirective matches line against the directive syntax.
// It returns false for ordinary lines.
func ScanDirective(line string) (Directive, bool) {
	m := directivePattern.FindStringSubmatch(line)
	if m == nil {
		return Directive{}, false
	}
	return Directive{
		Type:    parseDirectiveType(m[1]),
		Args:    m[2],
		RawText: line,
	}, true
}

// DirectiveTypes lists every recognized directive in declaration order.
var DirectiveTypes = []DirectiveType{
	DirectiveIf, DirectiveElif, DirectiveElse, DirectiveEndif,
	DirectiveExpand, DirectiveInclude, DirectiveError,
}

// parseDirectiveType converts a directive name to DirectiveType.
func parseDirectiveType(name string) DirectiveType {
	for _, dt := range DirectiveTypes {
		if dt.String() == name {
			return dt
		}
	}
	return DirectiveType(-1)
}

// uncomment strips one layer of comment markup from an emitted line.
func uncomment(line string) string {
	line = commentOpenPattern.ReplaceAllString(line, "  ")
	return commentClosePattern.ReplaceAllString(line, "")
}
