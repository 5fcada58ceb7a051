// Package scoring holds the versioned point tables and the generic
// contribution-weighted scoring formula. Rules are immutable after
// construction and injected into the components that consult them, so
// tests can substitute alternate rule versions.
package scoring

import (
	"log/slog"

	"github.com/facultymetrics/dossier/internal/evidence"
)

// Entry is a point entry for one evidence type: either a flat base value
// or a table of per-subtype (or per-stage, per-level) base values.
type Entry struct {
	Base     float64
	Subtypes map[string]float64
}

// Rules maps evidence types to their point entries. The zero value scores
// everything 0.
type Rules struct {
	entries map[evidence.Type]Entry
	version string
	logger  *slog.Logger
}

// New creates a Rules set from explicit entries. The version string
// identifies the rule revision in logs and persisted records; changing
// table contents is a breaking change for previously persisted scores.
func New(version string, entries map[evidence.Type]Entry, logger *slog.Logger) *Rules {
	return &Rules{
		entries: entries,
		version: version,
		logger:  logger.With("system", "scoring"),
	}
}

// Default returns the current NBC 461 point tables.
func Default(logger *slog.Logger) *Rules {
	return New("nbc461-c9", map[evidence.Type]Entry{
		// KRA 1B: instructional materials
		evidence.TypeMaterialSole: {Subtypes: map[string]float64{
			"textbook":         30,
			"chapter":          16,
			"manual":           10,
			"multimedia":       10,
			"testing_material": 10,
		}},
		evidence.TypeMaterialCo: {Subtypes: map[string]float64{
			"textbook":         10,
			"chapter":          16,
			"manual":           10,
			"multimedia":       10,
			"testing_material": 10,
		}},
		evidence.TypeProgram: {Subtypes: map[string]float64{
			"lead":        10,
			"contributor": 5,
		}},

		// KRA 1C: services rendered to students
		evidence.TypeAdviser: {Subtypes: map[string]float64{
			"SP": 3,
			"CP": 3,
			"UT": 5,
			"MT": 8,
			"DD": 10,
		}},
		evidence.TypePanel: {Subtypes: map[string]float64{
			"SP": 1,
			"CP": 1,
			"UT": 1,
			"MT": 2,
			"DD": 2,
		}},
		evidence.TypeMentor: {Base: 3},

		// KRA 2A: research outputs. The unified research family scores from
		// authorship-mode tables keyed by display-type slug.
		evidence.TypeResearch: {Subtypes: map[string]float64{
			"sole/book":                100,
			"sole/journal_article":     35,
			"sole/book_chapter":        35,
			"sole/monograph":           35,
			"sole/other_peer_reviewed": 10,
			"co/book":                  50,
			"co/journal_article":       35,
			"co/book_chapter":          35,
			"co/monograph":             35,
			"co/other_peer_reviewed":   10,
		}},
		evidence.TypeProjectLead:        {Base: 35},
		evidence.TypeProjectContributor: {Base: 35},
		evidence.TypeCitationLocal:      {Base: 5},
		evidence.TypeCitationIntl:       {Base: 10},

		// KRA 2B: inventions and innovations
		evidence.TypeInvention: {Subtypes: map[string]float64{
			"acceptance":  10,
			"publication": 20,
			"grant":       80,
		}},
		evidence.TypeUtilityModel:     {Base: 10},
		evidence.TypeIndustrialDesign: {Base: 10},
		evidence.TypeCommercialized: {Subtypes: map[string]float64{
			"local":         20,
			"international": 30,
		}},
		evidence.TypeNewSoftware:     {Base: 10},
		evidence.TypeUpdatedSoftware: {Base: 4},
		evidence.TypeBiologicalSole:  {Base: 10},
		evidence.TypeBiologicalCo:    {Base: 10},

		// KRA 2C: creative works
		evidence.TypePerformingArt: {Subtypes: map[string]float64{
			"own":    20,
			"others": 10,
		}},
		evidence.TypeExhibition:   {Base: 20},
		evidence.TypeJuriedDesign: {Base: 20},
		evidence.TypeLiterary: {Subtypes: map[string]float64{
			"novel":       20,
			"short_story": 10,
			"essay":       10,
			"poetry":      10,
		}},
	}, logger)
}

// Version returns the rule revision identifier.
func (r *Rules) Version() string {
	return r.version
}

// Base resolves the base point value for an evidence type and optional
// subtype. A lookup that cannot resolve to a scalar — unknown type,
// unknown subtype, or a subtype requested where the entry is flat (and
// vice versa) — is a configuration problem: it scores 0 with a warning,
// never an error.
func (r *Rules) Base(t evidence.Type, subtype string) float64 {
	entry, ok := r.entries[t]
	if !ok {
		r.warn("no point entry for evidence type", t, subtype)
		return 0
	}

	if entry.Subtypes == nil {
		if subtype != "" {
			r.warn("subtype given for flat point entry", t, subtype)
		}
		return entry.Base
	}

	if subtype == "" {
		r.warn("point entry requires a subtype", t, subtype)
		return 0
	}

	base, ok := entry.Subtypes[subtype]
	if !ok {
		r.warn("no point entry for subtype", t, subtype)
		return 0
	}
	return base
}

// Calculate applies the generic formula: base × contribution% / 100.
// Specialized extractors compute their own totals and bypass this.
func (r *Rules) Calculate(t evidence.Type, subtype string, contributionPercent float64) float64 {
	return r.Base(t, subtype) * contributionPercent / 100
}

func (r *Rules) warn(msg string, t evidence.Type, subtype string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg, "evidence_type", string(t), "subtype", subtype, "rules_version", r.version)
}
