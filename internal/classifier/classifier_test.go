package classifier_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facultymetrics/dossier/internal/classifier"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(endpoint string) classifier.Client {
	return classifier.NewHTTP(&classifier.Config{
		Endpoint: endpoint,
		Timeout:  "5s",
	}, testLogger())
}

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"primary_kra": "1",
			"criterion": "C",
			"sub_criterion": "1.1",
			"confidence": 0.92,
			"explanation": "adviser certification"
		}`)
	}))
	defer server.Close()

	got := newClient(server.URL).Classify(context.Background(), "certification text")

	if got.Unknown() {
		t.Fatal("got the unknown sentinel for a valid response")
	}
	if got.PrimaryKRA != "1" || got.Criterion != "C" || got.SubCriterion != "1.1" {
		t.Errorf("triple = %s/%s/%s", got.PrimaryKRA, got.Criterion, got.SubCriterion)
	}
	if got.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", got.Confidence)
	}
}

func TestClassifyDegradesToUnknown(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "not json")
			},
		},
		{
			name: "empty primary kra",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"criterion": "A"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			got := newClient(server.URL).Classify(context.Background(), "text")
			if !got.Unknown() {
				t.Errorf("got %+v, want the unknown sentinel", got)
			}
			if got.Criterion != classifier.NotApplicable || got.SubCriterion != classifier.NotApplicable {
				t.Errorf("sentinel fields = %s/%s", got.Criterion, got.SubCriterion)
			}
			if got.Confidence != 0 {
				t.Errorf("sentinel confidence = %v, want 0", got.Confidence)
			}
		})
	}
}

func TestClassifyUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	got := newClient(server.URL).Classify(context.Background(), "text")
	if !got.Unknown() {
		t.Errorf("got %+v, want the unknown sentinel", got)
	}
}
