package preprocess

import (
	"os"
	"sort"

	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/debug"
)

// ExtractDefines finds all define names referenced by the directives of one file.
// Names come from identifiers in #if/#elif conditions and __NAME__ tokens in
// #expand lines. Included files are not followed.
func ExtractDefines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	for _, line := range newlinePattern.Split(string(content), -1) {
		d, ok := ScanDirective(line)
		if !ok {
			continue
		}
		switch d.Type {
		case DirectiveIf, DirectiveElif:
			for _, name := range conditionIdentifiers(d.Args) {
				names[name] = struct{}{}
			}
		case DirectiveExpand:
			for _, token := range variablePattern.FindAllString(d.Args, -1) {
				names[token[2:len(token)-2]] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)

	debug.Debug("[preprocess] ExtractDefines: found %d unique define(s): %v", len(result), result)
	return result, nil
}

// conditionIdentifiers returns the identifiers of a condition, stopping at the
// first lexical error.
func conditionIdentifiers(code string) []string {
	lex := exprLexer{src: code}
	var idents []string
	for {
		tok, err := lex.next()
		if err != nil || tok.kind == tokEOF {
			return idents
		}
		if tok.kind != tokIdent {
			continue
		}
		switch tok.text {
		case "true", "false", "null", "undefined":
			continue
		}
		idents = append(idents, tok.text)
	}
}
