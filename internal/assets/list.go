package assets

import (
	"bufio"
	"strings"
)

// ParseList splits list content into entries.
// Blank lines and # comments are skipped; entries are trimmed and lower-cased.
// Duplicates keep their first position.
func ParseList(content string) []string {
	var entries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.ToLower(line)
		if seen[line] {
			continue
		}
		seen[line] = true
		entries = append(entries, line)
	}

	return entries
}
