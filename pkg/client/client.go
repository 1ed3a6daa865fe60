package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kailas-cloud/lookup/internal/domain"
)

const searchPath = "/search"

// Record is one matching entry returned by the service.
type Record struct {
	Email  string `json:"email"`
	Number string `json:"number"`
}

type searchRequest struct {
	Email  string `json:"email"`
	Number string `json:"number,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorBody struct {
	Errors []fieldErrorBody `json:"errors"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client calls the lookup service over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client. Without options it targets DefaultBaseURL with http.DefaultClient.
func New(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	return &Client{baseURL: cfg.baseURL, http: cfg.httpClient}
}

// BaseURL returns the service address in use.
func (c *Client) BaseURL() string { return c.baseURL }

// Search posts the query and returns the matching records in service order.
// The result is never nil on success.
func (c *Client) Search(ctx context.Context, email, number string) ([]Record, error) {
	body, err := json.Marshal(searchRequest{Email: email, Number: number})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		recs := make([]Record, 0)
		if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
			return nil, fmt.Errorf("%w: decode results: %w", ErrTransport, err)
		}
		if recs == nil {
			recs = make([]Record, 0)
		}
		return recs, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, decodeValidation(resp.Body)
	default:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: eb.Error}
	}
}

func decodeValidation(r io.Reader) error {
	var vb validationErrorBody
	if err := json.NewDecoder(r).Decode(&vb); err != nil {
		return fmt.Errorf("%w: decode validation errors: %w", ErrTransport, err)
	}
	fields := make([]domain.FieldError, len(vb.Errors))
	for i, f := range vb.Errors {
		fields[i] = domain.FieldError{Field: f.Field, Message: f.Message}
	}
	return domain.NewValidationError(fields...)
}
