package textmatch

import (
	"regexp"
	"strings"
)

// IntroSection names the implicit section holding lines that precede the
// first recognized header.
const IntroSection = "intro"

// DefaultSectionHeaders covers the signature-block headers seen across
// adviser and panel certification documents.
var DefaultSectionHeaders = []string{"adviser", "panel", "approved by", "committee", "signatures"}

func headerPattern(header string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(header) + `\b`)
}

// Sections segments text into labeled blocks by scanning lines top to
// bottom. A line containing a header keyword starts a new section that
// absorbs subsequent lines until the next header line; unmatched leading
// lines form the "intro" section. The header line itself belongs to its
// section.
func Sections(text string, headers []string) map[string]string {
	lines := strings.Split(text, "\n")
	sections := map[string][]string{IntroSection: {}}
	current := IntroSection

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			sections[current] = append(sections[current], line)
			continue
		}

		matched := false
		for _, header := range headers {
			if headerPattern(header).MatchString(stripped) {
				current = header
				sections[current] = []string{line}
				matched = true
				break
			}
		}

		if !matched {
			sections[current] = append(sections[current], line)
		}
	}

	result := make(map[string]string, len(sections))
	for name, block := range sections {
		result[name] = strings.Join(block, "\n")
	}
	return result
}

// SectionOrWhole returns the first present section among names, falling
// back to the whole text when none matched.
func SectionOrWhole(sections map[string]string, text string, names ...string) string {
	for _, name := range names {
		if block, ok := sections[name]; ok {
			return block
		}
	}
	return text
}
