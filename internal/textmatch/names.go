// Package textmatch provides the fuzzy text heuristics shared by the
// evidence extractors: faculty name-variant generation, section
// segmentation, role-proximity search, and academic-year/project-level
// inference. All functions are pure over their inputs.
package textmatch

import (
	"slices"
	"strings"
)

// SplitFacultyName splits a full faculty name into first-name(s) and
// last-name parts. Returns false when the name has fewer than two parts
// and cannot anchor a signature-block search.
func SplitFacultyName(fullName string) (first, last string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}

// NameVariants generates lowercase name variants used to absorb
// signature-block formatting differences: "first last", "last, first",
// bare last name, middle-initial forms, and first-initial forms.
func NameVariants(firstName, lastName string) []string {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))

	variants := []string{
		first + " " + last,
		last + ", " + first,
		last,
	}

	if strings.Contains(first, " ") {
		parts := strings.Fields(first)
		if len(parts) >= 2 {
			base := parts[0]
			initial := string([]rune(parts[1])[0])
			variants = append(variants,
				base+" "+initial+". "+last,
				base+" "+last,
				last+", "+base+" "+initial+".",
			)
		}
	}

	if first != "" && last != "" {
		initial := string([]rune(first)[0])
		variants = append(variants,
			initial+". "+last,
			last+", "+initial+".",
		)
	}

	slices.Sort(variants)
	variants = slices.Compact(variants)
	return slices.DeleteFunc(variants, func(v string) bool { return v == "" })
}
