package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripplanner/entities"
	"tripplanner/pkg/log"
)

// Config carries everything the provider clients need. It is injected at
// construction time - the API key is never read from a package global.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func newClient(cfg Config) client {
	if cfg.BaseURL == "" {
		panic("provider base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

func (c client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid provider URL: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	c.setHeaders(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.ProviderError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errUnknownDestination
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return entities.ProviderError{
			Op:  "GET " + path,
			Err: fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return entities.ProviderError{Op: "GET " + path, Err: fmt.Errorf("malformed payload: %w", err)}
	}

	return nil
}

func (c client) post(ctx context.Context, path string, body io.Reader, idempotencyKey string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	c.setHeaders(ctx, req)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, entities.ProviderError{Op: "POST " + path, Err: err}
	}

	return resp, nil
}

func (c client) setHeaders(ctx context.Context, req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if correlationID := log.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set("Correlation-ID", correlationID)
	}
}
