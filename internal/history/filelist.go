package history

import (
	"fmt"
	"strings"
)

const fileURIPrefix = "file://"

// SummarizeFileList rewrites a copied list of file:// URIs into a short
// summary of the form "(<n> paths): <path1>\n<path2>...".
//
// The input qualifies when splitting on newlines yields more than one
// segment and the first segment starts with "file://". Each path loses the
// prefix and surrounding whitespace; blank lines are dropped. n is the number
// of kept paths minus one, as clipqture has always reported it.
// Any other text is returned unchanged.
func SummarizeFileList(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 || !strings.HasPrefix(lines[0], fileURIPrefix) {
		return text
	}

	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		p := strings.TrimSpace(strings.ReplaceAll(line, fileURIPrefix, ""))
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return fmt.Sprintf("(%d paths): %s", len(paths)-1, strings.Join(paths, "\n"))
}
