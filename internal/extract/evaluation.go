package extract

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/facultymetrics/dossier/internal/evidence"
)

var (
	percentPattern = regexp.MustCompile(`\b\d{1,3}(?:\.\d+)?%`)

	equivalentPattern = regexp.MustCompile(`(?is)Equivalent\s*Percentage\s*(?:[:\-–—]?\s*)?(\d{1,3}(?:\.\d+)?%)`)

	semesterOrdinalPattern = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)\s+semester\s+(?:A\.Y\.|A\.Y)\s*\d{4}\s*[-–—]\s*\d{4}`)
	semesterWordPattern    = regexp.MustCompile(`(?i)\b(?:first|second|1st|2nd)\s+semester\s+(?:A\.Y\.|A\.Y)\s*\d{4}\s*[-–—]\s*\d{4}`)

	evalNormalizer = strings.NewReplacer(
		"’", "'",
		"‘", "'",
		"“", `"`,
		"”", `"`,
		"–", "-",
		"—", "-",
		" ", " ",
	)

	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
)

// Teaching-effectiveness phrasings, strict forms. Scanned OCR output
// often mangles the whitespace, so each pattern also gets a relaxed
// variant with \s+ widened to \W{0,6}.
var (
	studentEvalPatterns = []string{
		`\bstudents?['’]?\s*evaluation\b`,
		`\bstudent\s+evaluation\b`,
		`\bevaluation\s+by\s+students?\b`,
		`\bstudents?\s+evaluation\s+on\b`,
	}
	supervisorEvalPatterns = []string{
		`\bsupervisors?['’]?\s*evaluation\b`,
		`\bsupervisor\s+evaluation\b`,
		`\bevaluation\s+by\s+supervisors?\b`,
		`\bsupervisors?\s+evaluation\s+on\b`,
	}
)

type evalPatternSet struct {
	strict  []*regexp.Regexp
	relaxed []*regexp.Regexp
}

func compileEvalPatterns(patterns []string) evalPatternSet {
	var set evalPatternSet
	for _, p := range patterns {
		set.strict = append(set.strict, regexp.MustCompile(`(?i)`+p))
		relaxed := strings.ReplaceAll(p, `\s+`, `\W{0,6}`)
		set.relaxed = append(set.relaxed, regexp.MustCompile(`(?i)`+relaxed))
	}
	return set
}

// match tries every strict pattern first, then the relaxed variants.
func (s evalPatternSet) match(text string) bool {
	for _, p := range s.strict {
		if p.MatchString(text) {
			return true
		}
	}
	for _, p := range s.relaxed {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	studentEvalSet    = compileEvalPatterns(studentEvalPatterns)
	supervisorEvalSet = compileEvalPatterns(supervisorEvalPatterns)
)

// EvaluationExtractor handles teaching-effectiveness certificates: it
// pulls the equivalent percentage, the semester/academic-year line, and
// the evaluation type (student, supervisor, or both) out of noisy
// scanned text. The equivalent percentage is the score.
type EvaluationExtractor struct {
	logger *slog.Logger
}

func NewEvaluationExtractor(logger *slog.Logger) *EvaluationExtractor {
	return &EvaluationExtractor{logger: logger.With("system", "extract.evaluation")}
}

func (e *EvaluationExtractor) Extract(_ context.Context, req Request) ([]evidence.Item, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, nil
	}

	norm := evalNormalizer.Replace(req.Text)
	norm = horizontalSpace.ReplaceAllString(norm, " ")
	norm = strings.ReplaceAll(norm, "\r", "\n")

	percentages := percentPattern.FindAllString(norm, -1)

	equivalent := ""
	if m := equivalentPattern.FindStringSubmatch(norm); m != nil {
		equivalent = m[1]
	} else if len(percentages) > 0 {
		equivalent = percentages[0]
	}

	semesterAY := ""
	if m := semesterOrdinalPattern.FindString(norm); m != "" {
		semesterAY = strings.TrimSpace(m)
	} else if m := semesterWordPattern.FindString(norm); m != "" {
		semesterAY = strings.TrimSpace(m)
	}

	var found []string
	if studentEvalSet.match(norm) {
		found = append(found, "Student's Evaluation")
	}
	if supervisorEvalSet.match(norm) {
		found = append(found, "Supervisor's Evaluation")
	}

	// Last-resort keyword sweep over the raw text.
	lower := strings.ToLower(req.Text)
	if strings.Contains(lower, "student") && !slices.Contains(found, "Student's Evaluation") {
		found = append(found, "Student's Evaluation")
	}
	if strings.Contains(lower, "supervisor") && !slices.Contains(found, "Supervisor's Evaluation") {
		found = append(found, "Supervisor's Evaluation")
	}

	var score float64
	if equivalent != "" {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(equivalent, "%"), 64); err == nil {
			score = v
		}
	}

	if equivalent == "" {
		e.logger.Warn("no equivalent percentage found in evaluation document")
	}

	return []evidence.Item{{
		Kind:              string(evidence.TypeEvaluation),
		EquivalentPercent: equivalent,
		SemesterAY:        semesterAY,
		EvaluationType:    strings.Join(found, ", "),
		TotalScore:        score,
	}}, nil
}
