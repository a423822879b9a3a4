package cssprefix

import (
	"regexp"
	"strings"
)

// Filter reports whether a line carries content to remove.
type Filter func(line string) bool

var (
	vendorPrefixPattern = regexp.MustCompile(`(^|\W)-(ms|o|webkit)-\w`)
	mozDenyListPattern  = regexp.MustCompile(`(^|\W)-moz-(box-sizing|grabbing|grab)\b`)

	newlinePattern    = regexp.MustCompile(`\r?\n`)
	blockOpenPattern  = regexp.MustCompile(`\{\s*$`)
	trailingBrace     = regexp.MustCompile(`([{}])\s*$`)
	statementEnd      = regexp.MustCompile(`[};]\s*$`)
	blockClosePattern = regexp.MustCompile(`\}\s*$`)
	contentThenClose  = regexp.MustCompile(`\S\s*}\s*$`)
)

// hasVendorPrefix reports whether line uses an -ms-, -o- or -webkit- prefix.
func hasVendorPrefix(line string) bool {
	return vendorPrefixPattern.MatchString(line)
}

// hasMozcentralPrefix reports whether line uses a vendor prefix or one of the
// legacy -moz- properties not shipped in mozilla-central.
func hasMozcentralPrefix(line string) bool {
	return hasVendorPrefix(line) || mozDenyListPattern.MatchString(line)
}

// FilterFor returns the removal filter for mode, or nil if mode strips nothing.
func FilterFor(mode string) Filter {
	switch mode {
	case ModeFirefox:
		return hasVendorPrefix
	case ModeMozcentral:
		return hasMozcentralPrefix
	default:
		return nil
	}
}

// RemovePrefixed deletes the lines and rule blocks flagged by filter.
//
// A flagged line ending in "{" removes the block up to its matching close,
// counting a trailing "{" as an opener and a trailing "}" as a closer only
// when the line holds no "{". A flagged line ending in "}" or ";" is removed
// alone. Any other flagged line starts a multi-line value: lines are removed
// until one ends in "}" or contains ":", and if that line has content before
// its "}", only the "}" onward is kept. Runs of blank lines left behind are
// collapsed to one. Braces inside comments or strings are not understood.
func RemovePrefixed(content string, filter Filter) string {
	lines := newlinePattern.Split(content, -1)

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !filter(line) {
			i++
			continue
		}

		switch {
		case blockOpenPattern.MatchString(line):
			level := 1
			j := i + 1
			for j < len(lines) && level > 0 {
				if m := trailingBrace.FindStringSubmatch(lines[j]); m != nil {
					if m[1] == "{" {
						level++
					} else if !strings.Contains(lines[j], "{") {
						level--
					}
				}
				j++
			}
			lines = append(lines[:i], lines[j:]...)
		case statementEnd.MatchString(line):
			lines = append(lines[:i], lines[i+1:]...)
		default:
			for {
				lines = append(lines[:i], lines[i+1:]...)
				if i >= len(lines) || blockClosePattern.MatchString(lines[i]) || strings.Contains(lines[i], ":") {
					break
				}
			}
			if i < len(lines) && contentThenClose.MatchString(lines[i]) {
				lines[i] = lines[i][strings.Index(lines[i], "}"):]
			}
		}

		for i > 0 && i < len(lines) && lines[i] == "" && lines[i-1] == "" {
			lines = append(lines[:i], lines[i+1:]...)
		}
	}
	return strings.Join(lines, "\n")
}
