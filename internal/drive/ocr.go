package drive

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTextExtractor calls an external OCR service over JSON.
type HTTPTextExtractor struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTextExtractor creates a TextExtractor for the given endpoint.
// Returns nil for an empty endpoint, which Source treats as no OCR.
func NewHTTPTextExtractor(endpoint string, timeout time.Duration) *HTTPTextExtractor {
	if endpoint == "" {
		return nil
	}
	return &HTTPTextExtractor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type ocrRequest struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type ocrResponse struct {
	Text string `json:"text"`
}

func (e *HTTPTextExtractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	body, err := json.Marshal(ocrRequest{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", fmt.Errorf("marshal ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr service returned status %d", resp.StatusCode)
	}

	var result ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return result.Text, nil
}
