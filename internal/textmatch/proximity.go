package textmatch

import (
	"regexp"
	"strings"
)

// roleWindow is the number of characters inspected on each side of a
// matched name when looking for an adjacent role keyword.
const roleWindow = 200

// FindNameNearRole locates the first occurrence of any name variant that
// has a role keyword within a symmetric window around the match. Role
// keywords are regular expression fragments matched on word boundaries.
// Returns the matched variant and the original-case context window, or
// ok=false when no variant sits near a role keyword.
func FindNameNearRole(text string, nameVariants, roleKeywords []string) (variant, context string, ok bool) {
	lower := strings.ToLower(text)

	rolePatterns := make([]*regexp.Regexp, len(roleKeywords))
	for i, kw := range roleKeywords {
		rolePatterns[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}

	for _, v := range nameVariants {
		vLower := strings.ToLower(v)
		namePattern := regexp.MustCompile(regexp.QuoteMeta(vLower))

		for _, loc := range namePattern.FindAllStringIndex(lower, -1) {
			start := max(loc[0]-roleWindow, 0)
			end := min(loc[1]+roleWindow, len(lower))
			window := lower[start:end]

			for _, role := range rolePatterns {
				if role.MatchString(window) {
					return v, text[start:end], true
				}
			}
		}
	}

	return "", "", false
}
