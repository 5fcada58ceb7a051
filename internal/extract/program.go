package extract

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/scoring"
	"github.com/facultymetrics/dossier/internal/textmatch"
)

var (
	boardResolutionPattern = regexp.MustCompile(`(?i)\b(?:board\s+)?resolution\s+no\.?\s*(\d{1,4})(?:\s*[,;]?\s*(?:s\.|series\s+of)\s*(\d{4}))?`)

	// Degree program titles: "Bachelor/Master/Doctor of <Title Words>",
	// optionally followed by "Major in <Title Words>".
	programTitlePattern = regexp.MustCompile(`\b(?:Bachelor|Master|Doctor)\s+of\s+[A-Z][A-Za-z]*(?:\s+(?:in|of|and|&)\s+[A-Z][A-Za-z]*|\s+[A-Z][A-Za-z]*)*(?:\s+[Mm]ajor\s+in\s+[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*)?`)
)

// Disjoint keyword-stem families for the program action, anchored at
// word starts so incidental substrings ("renewal", "knew") don't count.
// Revision stems win a tie: a document describing both states is treated
// as a revision of an existing program.
var (
	revisedStemPattern = regexp.MustCompile(`(?i)\b(?:revis|amend|updat|enhanc)`)
	newStemPattern     = regexp.MustCompile(`(?i)\b(?:new(?:ly)?\b|creat|establish|introduc)`)
)

// Lead-role keyword fragments sought near the faculty name.
var programLeadKeywords = []string{
	`lead(?:er)?`, `head`, `chair(?:person|man|woman)?`, `spearhead(?:ed)?`, `principal`,
}

// Contributor-override fragments: an explicit "contributed" statement
// adjacent to the name forces Contributor regardless of lead keywords.
var programContributedKeywords = []string{`contributed?`, `contributor`}

// ProgramExtractor handles curricular program development documents:
// board resolution id, academic year, New-vs-Revised action, the
// program title, and the faculty's Lead-vs-Contributor role. The
// classification sub-criterion, when present, decides the role and
// score outright; text-derived role is the fallback.
type ProgramExtractor struct {
	rules  *scoring.Rules
	logger *slog.Logger
}

func NewProgramExtractor(rules *scoring.Rules, logger *slog.Logger) *ProgramExtractor {
	return &ProgramExtractor{
		rules:  rules,
		logger: logger.With("system", "extract.program"),
	}
}

func (p *ProgramExtractor) Extract(_ context.Context, req Request) ([]evidence.Item, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, nil
	}

	resolution := ""
	if m := boardResolutionPattern.FindStringSubmatch(req.Text); m != nil {
		resolution = m[1]
		if m[2] != "" {
			resolution += ", s. " + m[2]
		}
	}

	year, _ := textmatch.AcademicYear(req.Text)
	action := programAction(req.Text)
	title := programTitle(req.Text)
	role := p.programRole(req.Text, req.FacultyName)

	// The classification sub-criterion is authoritative when it carries a
	// role signal.
	switch req.SubCriterion {
	case "2.1":
		role = "Lead"
	case "2.2":
		role = "Contributor"
	}

	subtype := "contributor"
	if role == "Lead" {
		subtype = "lead"
	}
	score := p.rules.Base(evidence.TypeProgram, subtype)

	return []evidence.Item{{
		Kind:                "program_development",
		Title:               title,
		ProgramName:         title,
		ProgramAction:       action,
		BoardResolution:     resolution,
		AcademicYear:        year,
		Role:                role,
		ContributionPercent: 100,
		TotalScore:          score,
	}}, nil
}

// programAction classifies New vs Revised by counting stem hits from
// the two families. Revision wins ties.
func programAction(text string) string {
	revised := len(revisedStemPattern.FindAllStringIndex(text, -1))
	created := len(newStemPattern.FindAllStringIndex(text, -1))

	if created > revised {
		return "New"
	}
	return "Revised"
}

// programTitle extracts candidate degree titles, deduplicates and sorts
// them, and keeps only the first. Program documents describe one
// program; multiple matches are OCR echoes of the same title.
func programTitle(text string) string {
	matches := programTitlePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var titles []string
	for _, m := range matches {
		normalized := strings.Join(strings.Fields(m), " ")
		if !seen[normalized] {
			seen[normalized] = true
			titles = append(titles, normalized)
		}
	}
	slices.Sort(titles)
	return titles[0]
}

// programRole derives Lead vs Contributor from the text. An explicit
// "contributed" statement beside the name overrides lead keywords.
func (p *ProgramExtractor) programRole(text, facultyName string) string {
	first, last, ok := textmatch.SplitFacultyName(facultyName)
	if !ok {
		return "Contributor"
	}
	variants := textmatch.NameVariants(first, last)

	if _, _, found := textmatch.FindNameNearRole(text, variants, programContributedKeywords); found {
		return "Contributor"
	}
	if _, _, found := textmatch.FindNameNearRole(text, variants, programLeadKeywords); found {
		return "Lead"
	}
	return "Contributor"
}
