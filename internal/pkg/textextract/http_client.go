package textextract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Config holds configuration for the HTTP text extraction client.
type Config struct {
	BaseURL string // OCR service URL, e.g. "http://localhost:8090"
	Timeout time.Duration
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8090",
		Timeout: 30 * time.Second,
	}
}

// HTTPClient extracts on-screen text via an external OCR service that
// accepts a frame upload and returns recognized text lines.
type HTTPClient struct {
	config     Config
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTPClient.
func NewHTTPClient(config Config) *HTTPClient {
	return &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// apiResponse is the OCR service response shape.
type apiResponse struct {
	Texts []string `json:"texts"`
}

// ExtractText implements Extractor.
func (c *HTTPClient) ExtractText(ctx context.Context, img image.Image) ([]string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "frame.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url := c.config.BaseURL + "/extract"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OCR API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return apiResp.Texts, nil
}
