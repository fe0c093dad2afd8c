// Package sanitize turns arbitrary category text into file name stems.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// reserved matches characters most filesystems refuse in a path segment.
	reserved = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	// spacing matches whitespace and any colon variant left after reserved.
	spacing = regexp.MustCompile(`[\s:]+`)
	// leftover matches anything that is not a letter, digit, underscore or hyphen.
	leftover = regexp.MustCompile(`[^\p{L}\p{N}_-]`)
	// underscoreRun collapses consecutive underscores.
	underscoreRun = regexp.MustCompile(`_{2,}`)
)

// Options tunes Filename.
type Options struct {
	// PreserveUnderscoreRuns keeps "a__b" as is. Older exports never collapsed
	// underscore runs, so set this to reproduce their file names.
	PreserveUnderscoreRuns bool
}

// Filename converts text to a lowercase stem that is safe as a single path segment.
//
// Example: "Arts & Crafts:" → "artscrafts"
func Filename(text string) string {
	return Options{}.Filename(text)
}

// Filename applies the sanitization policy with the receiver's options.
func (o Options) Filename(text string) string {
	s := reserved.ReplaceAllString(text, "")
	s = spacing.ReplaceAllString(s, "")
	s = leftover.ReplaceAllString(s, "")
	if !o.PreserveUnderscoreRuns {
		s = underscoreRun.ReplaceAllString(s, "_")
	}
	s = strings.Trim(s, "_")
	return strings.Map(unicode.ToLower, s)
}

// IsClean reports whether s could have been produced by Filename.
func IsClean(s string) bool {
	if reserved.MatchString(s) || spacing.MatchString(s) || leftover.MatchString(s) {
		return false
	}
	if strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") {
		return false
	}
	return s == strings.Map(unicode.ToLower, s)
}
