package document

import (
	"regexp"
	"strings"
)

var typeCheckingDirective = regexp.MustCompile(`(?mi)^.*%\s*type\s+checking:?\s*on\s*$`)

// StripComments removes "%" line comments. Text before a comment keeps its
// byte columns, so positions computed on the result are valid in the input.
func StripComments(text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.IndexByte(line, '%'); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// TypeCheckingEnabled reports whether the document opts in to type checking
// with a "% type checking on" comment.
func TypeCheckingEnabled(text string) bool {
	return typeCheckingDirective.MatchString(text)
}
