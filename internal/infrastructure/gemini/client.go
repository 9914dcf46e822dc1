// Package gemini implements the language model port against the Google
// generateContent REST endpoint. The client is a pure transport: it reports
// the HTTP status and extracted text, and leaves ladder policy to the caller.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/datahunter/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client handles communication with the Gemini generateContent API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// Request/response wire types for the generateContent endpoint. Only the
// fields the pipeline touches are modelled.

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type googleSearch struct{}

type tool struct {
	GoogleSearch *googleSearch `json:"google_search,omitempty"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Tools             []tool    `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewClient creates a new Gemini client
func NewClient(apiKey, baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Free-tier Gemini quotas are per-minute; pace calls instead of burning
	// the quota into 429 ladder churn.
	limiter := rate.NewLimiter(rate.Limit(0.5), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		logger:      logger.With().Str("component", "gemini").Logger(),
	}
}

// Configured reports whether the client holds a usable credential.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Generate calls one model endpoint. A non-nil error means a transport-level
// fault; HTTP-level failures come back in the result's StatusCode and Body.
func (c *Client) Generate(ctx context.Context, model string, in domain.GenerateInput) (*domain.ModelResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqBody := buildRequest(in)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/%s:generateContent?key=%s", c.baseURL, normalizeModelPath(model), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	result := &domain.ModelResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	if resp.StatusCode == http.StatusOK {
		result.Text = extractText(body)
	}

	c.logger.Debug().
		Str("model", model).
		Int("status", resp.StatusCode).
		Bool("grounded", in.EnableGrounding).
		Bool("has_image", in.InlineImage != "").
		Msg("generateContent call completed")

	return result, nil
}

// buildRequest assembles the wire payload: prompt text, optional inline
// image, optional system instruction, optional search-grounding tool.
func buildRequest(in domain.GenerateInput) generateRequest {
	parts := []part{{Text: in.Prompt}}
	if in.InlineImage != "" {
		mime := in.ImageMIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, part{InlineData: &inlineData{MIMEType: mime, Data: in.InlineImage}})
	}

	req := generateRequest{
		Contents: []content{{Parts: parts}},
	}

	if in.SystemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: in.SystemInstruction}}}
	}

	if in.EnableGrounding {
		req.Tools = []tool{{GoogleSearch: &googleSearch{}}}
	}

	return req
}

// normalizeModelPath ensures the model id carries the "models/" prefix the
// endpoint expects.
func normalizeModelPath(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

// extractText pulls the answer text from its fixed path in the response body
// (candidates[0].content.parts[0].text). Anything malformed yields "".
func extractText(body []byte) string {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}
