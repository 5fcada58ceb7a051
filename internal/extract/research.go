package extract

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/scoring"
)

// ErrRateLimited signals the semantic collaborator throttled the call.
// The research extractor backs off and retries on it; any other error is
// terminal for the call.
var ErrRateLimited = errors.New("semantic extractor rate limited")

// ResearchFields is the structured result of one semantic extraction
// call. Contribution is the faculty's authorship percentage.
type ResearchFields struct {
	Title         string  `json:"title"`
	Journal       string  `json:"journal"`
	Reviewer      string  `json:"reviewer"`
	Indexing      string  `json:"indexing"`
	DatePublished string  `json:"date_published"`
	Contribution  float64 `json:"contribution"`
}

// SemanticExtractor delegates research field extraction to an external
// text-understanding model.
type SemanticExtractor interface {
	ExtractResearch(ctx context.Context, text string) (ResearchFields, error)
}

// PlaceholderTitle flags a research item whose semantic extraction
// failed and needs manual review.
const PlaceholderTitle = "Extraction Failed - Manual Review Required"

// researchDisplayTypes maps a KRA 2A sub-criterion code to its
// authoritative display type. The collaborator's free-text type guess is
// never trusted.
var researchDisplayTypes = map[string]string{
	"1.1": "Book", "1.2": "Book",
	"1.3": "Journal Article", "1.4": "Journal Article",
	"1.5": "Book Chapter", "1.6": "Book Chapter",
	"1.7": "Monograph", "1.8": "Monograph",
	"1.9": "Other Peer-Reviewed Output",
}

// researchScoringSlugs keys the display types into the rule table.
var researchScoringSlugs = map[string]string{
	"Book":                       "book",
	"Journal Article":            "journal_article",
	"Book Chapter":               "book_chapter",
	"Monograph":                  "monograph",
	"Other Peer-Reviewed Output": "other_peer_reviewed",
}

// Disjoint sole/co authorship code sets. Code 1.9 is in neither: its
// mode resolves from the extracted contribution.
var (
	soleResearchCodes = map[string]bool{"1.1": true, "1.3": true, "1.5": true, "1.7": true}
	coResearchCodes   = map[string]bool{"1.2": true, "1.4": true, "1.6": true, "1.8": true}
)

// ResearchExtractor handles the unified KRA 2A research family. Field
// extraction is delegated to the semantic collaborator with bounded
// retries on throttling; any other failure degrades to one placeholder
// item rather than erroring the upload.
type ResearchExtractor struct {
	semantic    SemanticExtractor
	rules       *scoring.Rules
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(time.Duration)
	logger      *slog.Logger
}

func NewResearchExtractor(semantic SemanticExtractor, rules *scoring.Rules, logger *slog.Logger) *ResearchExtractor {
	return &ResearchExtractor{
		semantic:    semantic,
		rules:       rules,
		maxAttempts: 4,
		baseBackoff: 2 * time.Second,
		sleep:       time.Sleep,
		logger:      logger.With("system", "extract.research"),
	}
}

func (r *ResearchExtractor) Extract(ctx context.Context, req Request) ([]evidence.Item, error) {
	displayType, ok := researchDisplayTypes[req.SubCriterion]
	if !ok {
		r.logger.Warn("unrecognized research sub-criterion", "sub_criterion", req.SubCriterion)
		return nil, nil
	}

	fields, err := r.extractWithRetry(ctx, req.Text)
	if err != nil {
		r.logger.Warn("semantic extraction failed, emitting placeholder",
			"sub_criterion", req.SubCriterion,
			"error", err,
		)
		return []evidence.Item{{
			Kind:       researchKind(displayType),
			Title:      PlaceholderTitle,
			Subtype:    displayType,
			AuthorMode: authorMode(req.SubCriterion, 0),
		}}, nil
	}

	mode := authorMode(req.SubCriterion, fields.Contribution)
	contribution := fields.Contribution
	if mode == "sole" {
		contribution = 100
	}

	slug := researchScoringSlugs[displayType]
	base := r.rules.Base(evidence.TypeResearch, mode+"/"+slug)

	score := base
	if mode == "co" {
		score = base * contribution / 100
	}
	score = math.Round(score*100) / 100

	return []evidence.Item{{
		Kind:                researchKind(displayType),
		Title:               fields.Title,
		Subtype:             displayType,
		AuthorMode:          mode,
		Journal:             fields.Journal,
		Reviewer:            fields.Reviewer,
		Indexing:            fields.Indexing,
		DatePublished:       fields.DatePublished,
		ContributionPercent: contribution,
		TotalScore:          score,
	}}, nil
}

// extractWithRetry calls the collaborator up to maxAttempts times,
// backing off with exponential growth plus jitter after each throttling
// response. A non-throttling error fails immediately.
func (r *ResearchExtractor) extractWithRetry(ctx context.Context, text string) (ResearchFields, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		fields, err := r.semantic.ExtractResearch(ctx, text)
		if err == nil {
			return fields, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return ResearchFields{}, err
		}

		lastErr = err
		if attempt < r.maxAttempts {
			wait := r.baseBackoff*time.Duration(1<<(attempt-1)) + r.jitter()
			r.logger.Warn("semantic extractor throttled, backing off",
				"attempt", attempt,
				"wait", wait.String(),
			)
			r.sleep(wait)
		}
	}
	return ResearchFields{}, lastErr
}

func (r *ResearchExtractor) jitter() time.Duration {
	if r.baseBackoff <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(r.baseBackoff) / 2))
}

func researchKind(displayType string) string {
	return strings.ToLower(strings.ReplaceAll(displayType, " ", "_"))
}

// authorMode resolves sole vs co authorship from the sub-criterion
// code. Code 1.9 resolves by contribution: 99 or above reads as sole
// authorship.
func authorMode(subCriterion string, contribution float64) string {
	switch {
	case soleResearchCodes[subCriterion]:
		return "sole"
	case coResearchCodes[subCriterion]:
		return "co"
	case contribution >= 99:
		return "sole"
	default:
		return "co"
	}
}
