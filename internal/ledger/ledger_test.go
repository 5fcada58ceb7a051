package ledger_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facultymetrics/dossier/internal/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptServer records the last payload posted to it and replies with the
// given Apps Script status envelope.
func scriptServer(t *testing.T, status, message string) (*httptest.Server, *map[string]any) {
	t.Helper()

	var last map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&last); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": status, "message": message})
	}))
	t.Cleanup(server.Close)
	return server, &last
}

func newSink(url string) *ledger.Client {
	return ledger.NewClient(&ledger.Config{ScriptURL: url, Timeout: "5s"}, testLogger())
}

func TestSendEvaluation(t *testing.T) {
	server, payload := scriptServer(t, "success", "")
	sink := newSink(server.URL)

	err := sink.SendEvaluation(context.Background(), "sheet-1", ledger.EvaluationEntry{
		AcademicYear:   "A.Y. 2022 - 2023",
		Semester:       "First",
		EvaluationType: "Student's Evaluation, Supervisor's Evaluation",
		TotalScore:     87.5,
		DriveLink:      "https://drive.google.com/file/d/abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := *payload
	if got["action"] != "kra1a_evaluation" {
		t.Errorf("action = %v", got["action"])
	}
	if got["spreadsheet_id"] != "sheet-1" {
		t.Errorf("spreadsheet_id = %v", got["spreadsheet_id"])
	}
	if got["academic_year"] != "2022-2023" {
		t.Errorf("academic_year = %v, want normalized 2022-2023", got["academic_year"])
	}
	if got["semester"] != "1st" {
		t.Errorf("semester = %v, want 1st", got["semester"])
	}
	if got["evaluation_type"] != "supervisor" {
		t.Errorf("evaluation_type = %v, want supervisor", got["evaluation_type"])
	}
	if got["total_score"] != 87.5 {
		t.Errorf("total_score = %v", got["total_score"])
	}
}

func TestSendProgram(t *testing.T) {
	server, payload := scriptServer(t, "success", "")
	sink := newSink(server.URL)

	err := sink.SendProgram(context.Background(), "sheet-2", ledger.ProgramEntry{
		ProgramName:     "Bachelor of Science in Information Technology",
		ProgramType:     "Revised",
		BoardResolution: "123, s. 2021",
		AcademicYear:    "2021-2022",
		Role:            "Lead",
		Score:           10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := *payload
	if got["action"] != "kra1b_program" {
		t.Errorf("action = %v", got["action"])
	}
	if got["board_reso"] != "123, s. 2021" {
		t.Errorf("board_reso = %v", got["board_reso"])
	}
	if got["program_type"] != "Revised" {
		t.Errorf("program_type = %v", got["program_type"])
	}
	if got["role"] != "Lead" {
		t.Errorf("role = %v", got["role"])
	}
}

func TestSendResearch(t *testing.T) {
	server, payload := scriptServer(t, "success", "")
	sink := newSink(server.URL)

	err := sink.SendResearch(context.Background(), "sheet-3", ledger.ResearchEntry{
		Title:         "Sample Study",
		ResearchType:  "Journal Article",
		Journal:       "Journal of Samples",
		DatePublished: "2023-06-15",
		AuthorMode:    "co",
		Contribution:  50,
		Score:         17.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := *payload
	if got["action"] != "kra2a_research" {
		t.Errorf("action = %v", got["action"])
	}
	if got["author_mode"] != "co" {
		t.Errorf("author_mode = %v", got["author_mode"])
	}
	if got["date_published"] != "06/15/2023" {
		t.Errorf("date_published = %v, want 06/15/2023", got["date_published"])
	}
	if got["contribution"] != float64(50) {
		t.Errorf("contribution = %v", got["contribution"])
	}
}

func TestSendScriptFailure(t *testing.T) {
	server, _ := scriptServer(t, "error", "sheet tab missing")
	sink := newSink(server.URL)

	err := sink.SendEvaluation(context.Background(), "sheet-1", ledger.EvaluationEntry{})
	if err == nil {
		t.Fatal("expected an error for a non-success script status")
	}
}

func TestSendHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sink := newSink(server.URL)
	if err := sink.SendProgram(context.Background(), "sheet-1", ledger.ProgramEntry{}); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestSplitSemesterAY(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSemester string
		wantYear     string
	}{
		{"ordinal form", "1st Semester A.Y. 2022-2023", "1st", "2022-2023"},
		{"word form", "Second Semester A.Y. 2021 - 2022", "second", "2021-2022"},
		{"year only", "A.Y. 2020-2021", "", "2020-2021"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			semester, year := ledger.SplitSemesterAY(tt.input)
			if semester != tt.wantSemester {
				t.Errorf("semester = %q, want %q", semester, tt.wantSemester)
			}
			if year != tt.wantYear {
				t.Errorf("year = %q, want %q", year, tt.wantYear)
			}
		})
	}
}
