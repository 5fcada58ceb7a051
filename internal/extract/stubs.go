package extract

import (
	"context"
	"log/slog"

	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/scoring"
)

// stub returns an extractor emitting one fixed-shape zero-score item.
// Stubs are explicit extension points for rule categories whose
// extraction logic is not yet specified; the dispatch contract treats
// them like any other strategy.
func stub(item evidence.Item) ExtractorFunc {
	return func(context.Context, Request) ([]evidence.Item, error) {
		return []evidence.Item{item}, nil
	}
}

// RegisterStubs binds the fixed-shape placeholder strategies for every
// evidence type without a specialized extractor.
func RegisterStubs(registry *Registry) {
	registry.Register(evidence.TypeMaterialSole, stub(evidence.Item{
		Kind: "textbook", Title: "Placeholder Title", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeMaterialCo, stub(evidence.Item{
		Kind: "textbook", Title: "Placeholder Title", ContributionPercent: 50,
	}))
	registry.Register(evidence.TypeMentor, stub(evidence.Item{
		Kind: "mentor", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeProjectLead, stub(evidence.Item{
		Kind: "research_to_project", Role: "lead", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeProjectContributor, stub(evidence.Item{
		Kind: "research_to_project", Role: "contributor", ContributionPercent: 50,
	}))
	registry.Register(evidence.TypeCitationLocal, stub(evidence.Item{
		Kind: "citation", Scope: "local", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeCitationIntl, stub(evidence.Item{
		Kind: "citation", Scope: "international", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeInvention, stub(evidence.Item{
		Kind: "invention", Subtype: "patent", Stage: "grant", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeUtilityModel, stub(evidence.Item{
		Kind: "invention", Subtype: "utility_model", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeIndustrialDesign, stub(evidence.Item{
		Kind: "invention", Subtype: "industrial_design", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeCommercialized, stub(evidence.Item{
		Kind: "commercialized", Scope: "local", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeNewSoftware, stub(evidence.Item{
		Kind: "software", Subtype: "new", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeUpdatedSoftware, stub(evidence.Item{
		Kind: "software", Subtype: "updated", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeBiologicalSole, stub(evidence.Item{
		Kind: "biological", Role: "sole", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeBiologicalCo, stub(evidence.Item{
		Kind: "biological", Role: "co", ContributionPercent: 50,
	}))
	registry.Register(evidence.TypePerformingArt, stub(evidence.Item{
		Kind: "performing_art", Subtype: "own", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeExhibition, stub(evidence.Item{
		Kind: "exhibition", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeJuriedDesign, stub(evidence.Item{
		Kind: "juried_design", ContributionPercent: 100,
	}))
	registry.Register(evidence.TypeLiterary, stub(evidence.Item{
		Kind: "literary", Subtype: "novel", ContributionPercent: 100,
	}))
}

// DefaultRegistry wires every strategy: the specialized extractors plus
// the stubs.
func DefaultRegistry(semantic SemanticExtractor, rules *scoring.Rules, logger *slog.Logger) *Registry {
	registry := NewRegistry(logger)
	registry.Register(evidence.TypeEvaluation, NewEvaluationExtractor(logger))
	registry.Register(evidence.TypeAdviser, NewAdviserExtractor(rules, logger))
	registry.Register(evidence.TypePanel, NewPanelExtractor(rules, logger))
	registry.Register(evidence.TypeProgram, NewProgramExtractor(rules, logger))
	registry.Register(evidence.TypeResearch, NewResearchExtractor(semantic, rules, logger))
	RegisterStubs(registry)
	return registry
}
