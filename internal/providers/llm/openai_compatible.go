package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
	"github.com/sandevgo/tuskshop/pkg/retry"
)

type OpenAICompatible struct {
	baseProvider
	temperature  float64
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
		temperature:  cfg.Temperature,
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

// WithRetrier replaces the backoff policy used for transient failures.
func (o *OpenAICompatible) WithRetrier(r *retry.Retrier) *OpenAICompatible {
	o.retrier = r
	return o
}

// Chat sends one completion request. Rate limiting and 5xx answers are retried
// with backoff; any other non-200 status fails at once.
func (o *OpenAICompatible) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	payload := map[string]any{
		"model":       o.model,
		"messages":    history,
		"temperature": o.temperature,
		"stream":      false,
	}
	if len(tools) > 0 {
		payload["tools"] = tools
	}

	headers := o.authHeaders()

	var msg core.Message
	attempt := 0
	err := o.retrier.Do(ctx, func() error {
		attempt++
		resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		msg, err = parseOpenAIResponse(resp)
		if err != nil && attempt > 1 {
			log.FromCtx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("llm request failed")
		}
		return err
	})
	if err != nil {
		return core.Message{}, err
	}
	return msg, nil
}

func (o *OpenAICompatible) authHeaders() map[string]string {
	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}
	return headers
}

func parseOpenAIResponse(resp *http.Response) (core.Message, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return core.Message{}, statusErr
		}
		return core.Message{}, retry.Permanent(statusErr)
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, retry.Permanent(fmt.Errorf("decode: %w", err))
	}
	if len(result.Choices) == 0 {
		return core.Message{}, retry.Permanent(fmt.Errorf("empty choices: %s", string(data)))
	}
	return result.Choices[0].Message, nil
}
