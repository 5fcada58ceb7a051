// Package ledger exports scored evidence to the faculty's spreadsheet
// ledger through its Apps Script endpoint. Each evidence family has its
// own payload shape routed by an action tag; the script replies with a
// JSON status envelope. Export failures are reported to the caller but
// never fail an upload.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Action tags routing a payload inside the Apps Script.
const (
	actionEvaluation = "kra1a_evaluation"
	actionProgram    = "kra1b_program"
	actionResearch   = "kra2a_research"
)

var semesterNames = map[string]string{
	"first": "1st", "1st": "1st",
	"second": "2nd", "2nd": "2nd",
}

var (
	academicYearPattern = regexp.MustCompile(`\d{4}\s*-\s*\d{4}`)
	semesterPattern     = regexp.MustCompile(`(?i)\b(first|second|1st|2nd)\b`)
)

// EvaluationEntry is one KRA 1A teaching evaluation row.
type EvaluationEntry struct {
	AcademicYear   string
	Semester       string
	EvaluationType string
	TotalScore     float64
	DriveLink      string
}

// ProgramEntry is one KRA 1B program contribution row.
type ProgramEntry struct {
	ProgramName     string
	ProgramType     string
	BoardResolution string
	AcademicYear    string
	Role            string
	Score           float64
	DriveLink       string
}

// ResearchEntry is one KRA 2A research output row.
type ResearchEntry struct {
	Title         string
	ResearchType  string
	Journal       string
	Reviewer      string
	Indexing      string
	DatePublished string
	AuthorMode    string
	Contribution  float64
	Score         float64
	DriveLink     string
}

// Sink receives scored evidence for one faculty ledger.
type Sink interface {
	SendEvaluation(ctx context.Context, spreadsheetID string, entry EvaluationEntry) error
	SendProgram(ctx context.Context, spreadsheetID string, entry ProgramEntry) error
	SendResearch(ctx context.Context, spreadsheetID string, entry ResearchEntry) error
}

// Client posts payloads to the Apps Script deployment.
type Client struct {
	scriptURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewClient creates a Sink from finalized configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		scriptURL: cfg.ScriptURL,
		client:    &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:    logger.With("system", "ledger"),
	}
}

func (c *Client) SendEvaluation(ctx context.Context, spreadsheetID string, entry EvaluationEntry) error {
	year := normalizeAcademicYear(entry.AcademicYear)
	semester := normalizeSemester(entry.Semester)
	evalType := normalizeEvaluationType(entry.EvaluationType)

	return c.send(ctx, "KRA 1A", map[string]any{
		"action":          actionEvaluation,
		"spreadsheet_id":  spreadsheetID,
		"academic_year":   year,
		"semester":        semester,
		"evaluation_type": evalType,
		"total_score":     entry.TotalScore,
		"drive_link":      entry.DriveLink,
	})
}

func (c *Client) SendProgram(ctx context.Context, spreadsheetID string, entry ProgramEntry) error {
	return c.send(ctx, "KRA 1B", map[string]any{
		"action":         actionProgram,
		"spreadsheet_id": spreadsheetID,
		"program_name":   entry.ProgramName,
		"program_type":   entry.ProgramType,
		"board_reso":     entry.BoardResolution,
		"academic_year":  normalizeAcademicYear(entry.AcademicYear),
		"role":           entry.Role,
		"score":          entry.Score,
		"drive_link":     entry.DriveLink,
	})
}

func (c *Client) SendResearch(ctx context.Context, spreadsheetID string, entry ResearchEntry) error {
	return c.send(ctx, fmt.Sprintf("KRA 2A (%s)", entry.AuthorMode), map[string]any{
		"action":         actionResearch,
		"spreadsheet_id": spreadsheetID,
		"author_mode":    entry.AuthorMode,
		"title":          entry.Title,
		"research_type":  entry.ResearchType,
		"journal":        entry.Journal,
		"reviewer":       entry.Reviewer,
		"indexing":       entry.Indexing,
		"date_published": normalizeDate(entry.DatePublished),
		"contribution":   entry.Contribution,
		"score":          entry.Score,
		"drive_link":     entry.DriveLink,
	})
}

type scriptResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) send(ctx context.Context, label string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", label, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", label, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send %s payload: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s export returned status %d", label, resp.StatusCode)
	}

	var result scriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	if result.Status != "success" {
		return fmt.Errorf("%s export failed: %s", label, result.Message)
	}

	c.logger.Info("ledger updated", "context", label)
	return nil
}

// SplitSemesterAY splits an extracted "1st Semester A.Y. 2022-2023"
// line into its semester token and academic year.
func SplitSemesterAY(semesterAY string) (semester, academicYear string) {
	if m := semesterPattern.FindString(semesterAY); m != "" {
		semester = strings.ToLower(m)
	}
	academicYear = normalizeAcademicYear(academicYearPattern.FindString(semesterAY))
	return semester, academicYear
}

// normalizeAcademicYear strips labels and unifies hyphens to the strict
// "2019-2020" form the ledger expects.
func normalizeAcademicYear(year string) string {
	year = strings.ReplaceAll(year, "A.Y.", "")
	year = strings.ReplaceAll(year, "Academic Year", "")
	year = strings.ReplaceAll(year, "–", "-")
	year = strings.ReplaceAll(year, "—", "-")
	year = strings.ReplaceAll(year, " ", "")
	return strings.TrimSpace(year)
}

func normalizeSemester(semester string) string {
	if mapped, ok := semesterNames[strings.ToLower(strings.TrimSpace(semester))]; ok {
		return mapped
	}
	return "1st"
}

func normalizeEvaluationType(evaluationType string) string {
	if strings.Contains(strings.ToLower(evaluationType), "supervisor") {
		return "supervisor"
	}
	return "student"
}

// normalizeDate renders a parseable date as MM/DD/YYYY, the ledger's
// date format; anything else passes through untouched.
func normalizeDate(date string) string {
	for _, layout := range []string{"2006-01-02", "January 2, 2006", "Jan 2, 2006", "2006/01/02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return date
}
