package extract_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/extract"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryDispatch(t *testing.T) {
	registry := extract.NewRegistry(testLogger())
	registry.Register(evidence.TypeMentor, extract.ExtractorFunc(
		func(ctx context.Context, req extract.Request) ([]evidence.Item, error) {
			return []evidence.Item{{Kind: "mentor", TotalScore: 3}}, nil
		},
	))

	items := registry.Extract(context.Background(), evidence.TypeMentor, extract.Request{})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Kind != "mentor" || items[0].TotalScore != 3 {
		t.Errorf("item = %+v", items[0])
	}
}

func TestRegistryUnknownType(t *testing.T) {
	registry := extract.NewRegistry(testLogger())

	items := registry.Extract(context.Background(), evidence.Type("unregistered"), extract.Request{})
	if items != nil {
		t.Errorf("got %v, want nil for unregistered type", items)
	}
}

func TestRegistryExtractorError(t *testing.T) {
	registry := extract.NewRegistry(testLogger())
	registry.Register(evidence.TypeExhibition, extract.ExtractorFunc(
		func(ctx context.Context, req extract.Request) ([]evidence.Item, error) {
			return nil, errors.New("upstream unavailable")
		},
	))

	items := registry.Extract(context.Background(), evidence.TypeExhibition, extract.Request{})
	if items != nil {
		t.Errorf("got %v, want nil when the strategy errors", items)
	}
}

func TestRegistryExtractorPanic(t *testing.T) {
	registry := extract.NewRegistry(testLogger())
	registry.Register(evidence.TypeExhibition, extract.ExtractorFunc(
		func(ctx context.Context, req extract.Request) ([]evidence.Item, error) {
			panic("malformed document state")
		},
	))

	items := registry.Extract(context.Background(), evidence.TypeExhibition, extract.Request{})
	if items != nil {
		t.Errorf("got %v, want nil when the strategy panics", items)
	}
}
