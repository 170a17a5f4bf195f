package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// maxFilenameRunes leaves room for an extension and a disambiguating suffix.
const maxFilenameRunes = 200

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns a book name into a portable file name. Characters
// invalid on common filesystems or meaningful in markdown links are removed
// or replaced, and the result is capped at 200 runes.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	// Markdown link syntax
	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	if runes := []rune(filename); len(runes) > maxFilenameRunes {
		filename = strings.TrimSpace(string(runes[:maxFilenameRunes]))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// UniqueFilename returns name, or name with the first free " (n)" suffix
// when name is already in taken. The returned name is added to taken.
func UniqueFilename(name string, taken map[string]bool) string {
	candidate := name
	for n := 2; taken[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	taken[strings.ToLower(candidate)] = true
	return candidate
}
