package insight

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultModel = "gemini-2.5-flash"

var (
	ErrAnalysisInFlight = errors.New("insight: an analysis is already running")
	ErrEmptyResponse    = errors.New("insight: model returned no content")
)

// Client calls a Gemini-style generateContent endpoint. At most one request
// runs at a time; Cancel aborts it. A second request while one is pending
// is rejected rather than racing the first.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	logger *slog.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		model:  defaultModel,
		logger: logger,
	}
}

// SetModel overrides the default model. Empty keeps the default.
func (c *Client) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.SetTimeout(d)
	}
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateText sends a text-only prompt and returns the model's reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	return c.generate(ctx, req)
}

// GenerateJSON sends a prompt and asks the model for a JSON response body.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}
	return c.generate(ctx, req)
}

// GenerateFromImage sends a prompt alongside inline image data.
func (c *Client) GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			}},
			{Text: prompt},
		}}},
	}
	return c.generate(ctx, req)
}

// Cancel aborts the in-flight request, if any.
func (c *Client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// begin claims the in-flight slot. It fails when a request is already
// running.
func (c *Client) begin(ctx context.Context) (context.Context, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return nil, nil, ErrAnalysisInFlight
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	gen := c.generation

	done := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		cancel()
		// After a Cancel the slot may already belong to a newer request;
		// only release it if it is still ours.
		if c.generation == gen {
			c.cancel = nil
		}
	}
	return reqCtx, done, nil
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	reqCtx, done, err := c.begin(ctx)
	if err != nil {
		return "", err
	}
	defer done()

	var response generateResponse
	resp, err := c.http.R().
		SetContext(reqCtx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&response).
		SetError(&response).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("insight: call model: %w", err)
	}

	if response.Error != nil {
		c.logger.ErrorContext(ctx, "Model returned error",
			"status_code", resp.StatusCode(),
			"message", response.Error.Message)
		return "", fmt.Errorf("insight: model error: %s (code %d)", response.Error.Message, response.Error.Code)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
