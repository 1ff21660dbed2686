// Package client provides a typed HTTP client for the Idea Board API.
//
// Calls mirror the server's RPC endpoints one to one, so application code can
// invoke them like local functions. Failures come back as coded domain
// errors reconstructed from the response envelope, which keeps errors.Is
// checks working on both sides of the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ideaboard/ideaboard-server/internal/api"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Client is a typed client for the Idea Board API.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitIdea validates and persists a new idea.
func (c *Client) SubmitIdea(ctx context.Context, req api.SubmitIdeaRequest) (*api.IdeaResponse, error) {
	var idea api.IdeaResponse
	if err := c.call(ctx, "/api/ideas/submit", req, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// ListIdeas returns all ideas in backend-native order.
func (c *Client) ListIdeas(ctx context.Context) ([]api.IdeaResponse, error) {
	var ideas []api.IdeaResponse
	if err := c.call(ctx, "/api/ideas/list", struct{}{}, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// GetIdea returns a single idea by its identity.
func (c *Client) GetIdea(ctx context.Context, id string) (*api.IdeaResponse, error) {
	var idea api.IdeaResponse
	if err := c.call(ctx, "/api/ideas/get", api.IdeaRefRequest{ID: id}, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// UpdateIdea replaces the full content of an existing idea.
func (c *Client) UpdateIdea(ctx context.Context, req api.UpdateIdeaRequest) (*api.IdeaResponse, error) {
	var idea api.IdeaResponse
	if err := c.call(ctx, "/api/ideas/update", req, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// DeleteIdea deletes an idea by its identity.
func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.call(ctx, "/api/ideas/delete", api.IdeaRefRequest{ID: id}, nil)
}

// envelope mirrors the server's response wrapper. Data stays raw until the
// call site knows the payload type.
type envelope struct {
	V       int            `json:"v"`
	Success bool           `json:"success"`
	Data    jsontext.Value `json:"data"`
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details any            `json:"details"`
}

// call executes one RPC: POST the body, unwrap the envelope, and decode the
// payload into out when the call succeeded. A nil out discards the payload.
func (c *Client) call(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.UnmarshalRead(resp.Body, &env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		return envelopeError(&env)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// envelopeError reconstructs the coded domain error from a failure envelope,
// so callers can branch with errors.Is against the shared sentinels.
func envelopeError(env *envelope) error {
	code := apperrors.Code(env.Code)
	if code == "" {
		code = apperrors.CodeInternal
	}
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	return &apperrors.Error{
		Code:    code,
		Message: msg,
		Details: env.Details,
	}
}
