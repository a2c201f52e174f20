package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/config"
	"github.com/samandr77/microservices/helpdesk/pkg/transport"
)

const (
	defaultRetryWaitMax = time.Second * 5
	maxErrorBodyBytes   = 64 << 10
	reasonDisabled      = "SERVICE_DISABLED"
	safetyThreshold     = "BLOCK_MEDIUM_AND_ABOVE"
)

var safetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

type Client struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

func NewClient(cfg config.Gemini) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(http.DefaultTransport)

	retryClient.Logger = nil

	// upstream status codes are translated for the caller, only transport errors are retried
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		client:  retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

func newGenerateRequest(prompt string) generateRequest {
	settings := make([]safetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		settings = append(settings, safetySetting{Category: category, Threshold: safetyThreshold})
	}

	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: 2048,
		},
		SafetySettings: settings,
	}
}

// Generate returns the text of the first candidate, or "" when the model
// produced none. Failures are *entity.AssistantError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &entity.AssistantError{Code: entity.ChatErrAPIKeyMissing}
	}

	body, err := json.Marshal(newGenerateRequest(prompt))
	if err != nil {
		return "", &entity.AssistantError{Code: entity.ChatErrInternal, Details: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &entity.AssistantError{Code: entity.ChatErrInternal, Details: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &entity.AssistantError{Code: entity.ChatErrInternal, Details: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var out generateResponse

	err = json.NewDecoder(resp.Body).Decode(&out)
	if err != nil {
		return "", &entity.AssistantError{Code: entity.ChatErrAPI, StatusCode: resp.StatusCode, Details: fmt.Sprintf("decode response: %s", err)}
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

func statusError(resp *http.Response) error {
	var body errorResponse

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	_ = json.Unmarshal(raw, &body)

	assistantErr := &entity.AssistantError{
		StatusCode: resp.StatusCode,
		Details:    body.Error.Message,
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		assistantErr.Code = entity.ChatErrBadRequest
	case http.StatusForbidden:
		assistantErr.Code = entity.ChatErrConfigurationNeeded

		for _, d := range body.Error.Details {
			if d.Reason == reasonDisabled {
				assistantErr.Code = entity.ChatErrServiceDisabled
				break
			}
		}
	case http.StatusTooManyRequests:
		assistantErr.Code = entity.ChatErrRateLimit
	case http.StatusServiceUnavailable:
		assistantErr.Code = entity.ChatErrModelOverloaded
	default:
		assistantErr.Code = entity.ChatErrAPI
	}

	return assistantErr
}
