package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"tradeagent/internal/model"
)

// Gateway error classification. Handlers map these to distinct HTTP
// statuses so the client can render an appropriate message.
var (
	ErrNotConfigured  = errors.New("gateway API key is not configured")
	ErrRateLimited    = errors.New("gateway rate limited")
	ErrQuotaExhausted = errors.New("gateway quota exhausted")
	ErrUnavailable    = errors.New("gateway unavailable")
)

// Relay opens streaming completions against an OpenAI-compatible
// gateway and hands the raw event stream to the caller. It never
// buffers or reshapes the stream.
type Relay struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     *logrus.Entry
}

// NewRelay creates a Relay. The HTTP client carries no overall timeout:
// the stream stays open for as long as the model generates, and the
// request context handles cancellation.
func NewRelay(baseURL, apiKey, modelName string, log *logrus.Logger) *Relay {
	return &Relay{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
		client:  &http.Client{},
		log:     log.WithField("component", "relay"),
	}
}

type completionRequest struct {
	Model    string          `json:"model"`
	Messages []model.Message `json:"messages"`
	Stream   bool            `json:"stream"`
}

// Open sends the completion request and returns the upstream body for
// streaming. The caller owns closing it. Cancelling ctx abandons the
// upstream read.
func (r *Relay) Open(ctx context.Context, systemPrompt string, history []model.Message) (io.ReadCloser, error) {
	if r.apiKey == "" {
		return nil, ErrNotConfigured
	}

	msgs := make([]model.Message, 0, len(history)+1)
	msgs = append(msgs, model.Message{Role: "system", Content: systemPrompt})
	msgs = append(msgs, history...)

	body, err := json.Marshal(completionRequest{Model: r.model, Messages: msgs, Stream: true})
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w: %w", err, ErrUnavailable)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		resp.Body.Close()
		return nil, ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		r.log.WithFields(logrus.Fields{"status": resp.StatusCode, "body": string(detail)}).Error("gateway error")
		return nil, ErrUnavailable
	}
	return resp.Body, nil
}
