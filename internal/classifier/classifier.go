// Package classifier defines the boundary to the external text
// classification model and an HTTP client for it. The model is a black
// box returning a KRA/criterion/sub-criterion triple with confidence;
// when it is unavailable the client degrades to a well-known Unknown
// sentinel instead of failing the pipeline.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Sentinel values returned when the classifier cannot produce a result.
const (
	UnknownKRA    = "Unknown"
	NotApplicable = "N/A"
)

// Result is the classifier's verdict for one document text.
type Result struct {
	PrimaryKRA   string  `json:"primary_kra"`
	Criterion    string  `json:"criterion"`
	SubCriterion string  `json:"sub_criterion"`
	Confidence   float64 `json:"confidence"`
	Explanation  string  `json:"explanation"`
}

// Unknown reports whether the result is the unavailability sentinel.
func (r Result) Unknown() bool {
	return r.PrimaryKRA == UnknownKRA
}

// UnknownResult returns the zero-confidence sentinel.
func UnknownResult() Result {
	return Result{
		PrimaryKRA:   UnknownKRA,
		Criterion:    NotApplicable,
		SubCriterion: NotApplicable,
		Confidence:   0,
	}
}

// Client classifies document text. Implementations must not fail the
// caller: unavailability yields the Unknown sentinel.
type Client interface {
	Classify(ctx context.Context, text string) Result
}

type httpClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTP creates a Client calling the classifier service's JSON
// endpoint.
func NewHTTP(cfg *Config, logger *slog.Logger) Client {
	return &httpClient{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:   logger.With("system", "classifier"),
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (c *httpClient) Classify(ctx context.Context, text string) Result {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		c.logger.Warn("marshal classify request failed", "error", err)
		return UnknownResult()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("build classify request failed", "error", err)
		return UnknownResult()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("classifier unavailable", "error", err)
		return UnknownResult()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("classifier returned non-200", "status", resp.StatusCode)
		return UnknownResult()
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("decode classifier response failed", "error", err)
		return UnknownResult()
	}

	if result.PrimaryKRA == "" {
		return UnknownResult()
	}

	c.logger.Info("document classified",
		"primary_kra", result.PrimaryKRA,
		"criterion", result.Criterion,
		"sub_criterion", result.SubCriterion,
		"confidence", fmt.Sprintf("%.1f", result.Confidence),
	)
	return result
}
