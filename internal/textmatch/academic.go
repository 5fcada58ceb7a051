package textmatch

import (
	"fmt"
	"regexp"
	"strconv"
)

// Single-year inference is bounded to the evaluation cycles the framework
// covers; a bare year outside this range is ignored.
const (
	minInferredYear = 2019
	maxInferredYear = 2025
)

var (
	explicitAYPattern = regexp.MustCompile(`(?i)(?:AY|A\.Y\.)\s*(\d{4})\s*[-–—]\s*(\d{4})`)
	bareRangePattern  = regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4})`)
	singleYearPattern = regexp.MustCompile(`\b(20(?:19|2[0-5]))\b`)
)

// AcademicYear infers a normalized "YYYY-YYYY" academic year from text
// using a pattern cascade: explicit "AY/A.Y. YYYY-YYYY", a bare
// consecutive year range, then a lone in-range 4-digit year expanded to
// "(year-1)-(year)". Returns ok=false when nothing plausible is found.
func AcademicYear(text string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{explicitAYPattern, bareRangePattern} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || end != start+1 {
			continue
		}
		return fmt.Sprintf("%d-%d", start, end), true
	}

	if m := singleYearPattern.FindStringSubmatch(text); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil && year >= minInferredYear && year <= maxInferredYear {
			return fmt.Sprintf("%d-%d", year-1, year), true
		}
	}

	return "", false
}

// ProjectLevel codes for student research supervision.
const (
	LevelSpecialProject      = "SP"
	LevelCapstone            = "CP"
	LevelUndergraduateThesis = "UT"
	LevelMastersThesis       = "MT"
	LevelDissertation        = "DD"
)

type levelEntry struct {
	level    string
	patterns []*regexp.Regexp
}

func compileLevel(level string, patterns ...string) levelEntry {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return levelEntry{level: level, patterns: compiled}
}

// levelKeywords is an ordered cascade; the first matching keyword fixes
// the level, so more specific phrases come before their abbreviations.
var levelKeywords = []levelEntry{
	compileLevel(LevelSpecialProject, `\bspecial\s+project\b`),
	compileLevel(LevelCapstone, `\bcapstone\s+project\b`, `\bcapstone\b`, `\bcp\b`),
	compileLevel(LevelUndergraduateThesis, `\bundergraduate\s+thesis\b`, `\bundergraduate\b`, `\but\b`, `\bbscs\b`),
	compileLevel(LevelMastersThesis, `\bmaster['’]?s?\s*thesis\b`, `\bmaster['’]?s?\b`, `\bmt\b`, `\bmit\b`),
	compileLevel(LevelDissertation, `\bdissertation\b`, `\bdd\b`, `\bdoctoral\b`),
}

// ProjectLevel maps text to a supervision level code via the keyword
// cascade. Returns ok=false when no level keyword appears.
func ProjectLevel(text string) (string, bool) {
	for _, entry := range levelKeywords {
		for _, p := range entry.patterns {
			if p.MatchString(text) {
				return entry.level, true
			}
		}
	}
	return "", false
}
