package extract

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/scoring"
	"github.com/facultymetrics/dossier/internal/textmatch"
)

// Role keyword regex fragments for the two student-service roles.
// Fragments are matched case-insensitively inside a word boundary.
var (
	adviserRoleKeywords = []string{
		`adviser`, `advisor`, `co[-\s]?adviser`, `co[-\s]?advisor`,
		`major[-\s]?adviser`, `major[-\s]?advisor`, `thesis[-\s]?adviser`,
		`dissertation[-\s]?adviser`, `undergraduate[-\s]?thesis[-\s]?adviser`,
		`master['’]?\s*thesis[-\s]?adviser`, `d\.?i\.?t\.?\s*thesis\s*adviser`,
	}
	panelRoleKeywords = []string{
		`panel[-\s]?member`, `panelist`, `member`, `external[-\s]?reader`,
		`committee`, `oral[-\s]?examination`, `examiner`,
	}
)

// serviceSpec fixes the parts of the identity-anchored search that
// differ between adviser and panel service.
type serviceSpec struct {
	evidenceType   evidence.Type
	kind           string
	titleFormat    string
	sectionHeaders []string
	sectionOrder   []string
	roleKeywords   []string
}

var adviserSpec = serviceSpec{
	evidenceType:   evidence.TypeAdviser,
	kind:           "adviser",
	titleFormat:    "Adviser Service (%s) %s",
	sectionHeaders: []string{"adviser", "approved by", "committee", "signatures"},
	sectionOrder:   []string{"adviser", "approved by", "committee"},
	roleKeywords:   adviserRoleKeywords,
}

var panelSpec = serviceSpec{
	evidenceType:   evidence.TypePanel,
	kind:           "panel",
	titleFormat:    "Panel Member Service (%s) %s",
	sectionHeaders: []string{"panel", "committee", "approved by", "signatures"},
	sectionOrder:   []string{"panel", "committee", "approved by"},
	roleKeywords:   panelRoleKeywords,
}

// ServiceExtractor implements the identity-anchored strategy shared by
// adviser and panel service documents: match a faculty name variant near
// a role keyword inside the role-relevant section, then derive the
// academic year and project level from the match context. A document
// that yields no year or no level earns nothing.
type ServiceExtractor struct {
	spec   serviceSpec
	rules  *scoring.Rules
	logger *slog.Logger
}

func NewAdviserExtractor(rules *scoring.Rules, logger *slog.Logger) *ServiceExtractor {
	return newServiceExtractor(adviserSpec, rules, logger)
}

func NewPanelExtractor(rules *scoring.Rules, logger *slog.Logger) *ServiceExtractor {
	return newServiceExtractor(panelSpec, rules, logger)
}

func newServiceExtractor(spec serviceSpec, rules *scoring.Rules, logger *slog.Logger) *ServiceExtractor {
	return &ServiceExtractor{
		spec:   spec,
		rules:  rules,
		logger: logger.With("system", "extract."+spec.kind),
	}
}

func (s *ServiceExtractor) Extract(_ context.Context, req Request) ([]evidence.Item, error) {
	first, last, ok := textmatch.SplitFacultyName(req.FacultyName)
	if !ok {
		s.logger.Warn("faculty name missing or incomplete", "faculty_name", req.FacultyName)
		return nil, nil
	}

	variants := textmatch.NameVariants(first, last)
	sections := textmatch.Sections(req.Text, s.spec.sectionHeaders)
	relevant := textmatch.SectionOrWhole(sections, req.Text, s.spec.sectionOrder...)

	matched, matchContext, found := textmatch.FindNameNearRole(relevant, variants, s.spec.roleKeywords)
	if !found {
		s.logger.Info("faculty name not found near role keywords",
			"faculty_name", req.FacultyName,
			"role", s.spec.kind,
		)
		return nil, nil
	}

	year, ok := textmatch.AcademicYear(matchContext)
	if !ok {
		year, ok = textmatch.AcademicYear(relevant)
	}
	level, levelOK := textmatch.ProjectLevel(matchContext)
	if !levelOK {
		level, levelOK = textmatch.ProjectLevel(relevant)
	}

	if !ok || !levelOK {
		s.logger.Warn("could not determine academic year or project level",
			"faculty_name", req.FacultyName,
			"academic_year", year,
			"level", level,
		)
		return nil, nil
	}

	count := 1
	score := s.rules.Base(s.spec.evidenceType, level) * float64(count)

	return []evidence.Item{{
		Kind:                s.spec.kind,
		Title:               fmt.Sprintf(s.spec.titleFormat, level, year),
		AcademicYear:        year,
		Level:               level,
		Count:               count,
		ContributionPercent: 100,
		MatchedName:         matched,
		MatchedContext:      truncateContext(matchContext),
		TotalScore:          score,
	}}, nil
}

func truncateContext(context string) string {
	if len(context) <= 200 {
		return context
	}
	cut := 200
	for cut > 0 && !utf8.RuneStart(context[cut]) {
		cut--
	}
	return context[:cut] + "..."
}
