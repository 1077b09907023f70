package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Transport issues one partner request and decodes the JSON envelope. The
// adapter never retries, overrides timeouts or cancels on its own; those are
// transport and workflow concerns.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body map[string]any) (map[string]any, error)
}

// HTTPTransport is the production Transport: bearer-token JSON calls against
// the partner base URL.
type HTTPTransport struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPTransport builds the partner HTTP transport. A nil client falls back
// to a default with a conservative timeout.
func NewHTTPTransport(baseURL, token string, client *http.Client, logger *slog.Logger) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		logger:  logger,
	}
}

// statusError carries a non-2xx partner response for classification.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("partner responded with status %d", e.Status)
	}
	return fmt.Sprintf("partner responded with status %d: %s", e.Status, e.Message)
}

// Do performs the request and returns the decoded JSON object. Bodies are
// always JSON; the Authorization header carries the bearer token.
func (t *HTTPTransport) Do(ctx context.Context, method, path string, query url.Values, body map[string]any) (map[string]any, error) {
	u := t.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("partner call",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", res.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &statusError{Status: res.StatusCode, Message: upstreamMessage(raw)}
	}

	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return envelope, nil
}

// upstreamMessage extracts a human-readable message from a partner error
// payload of the form {"errors":[{"errorCode":..,"errorMessage":".."}]}.
// Anything unparseable yields an empty message, never an error.
func upstreamMessage(raw []byte) string {
	var payload struct {
		Errors []struct {
			Code    any    `json:"errorCode"`
			Message string `json:"errorMessage"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// listRecords unwraps the named array a partner list response carries even
// for a single logical result, e.g. {"users": [...]}.
func listRecords(envelope map[string]any, key string) ([]map[string]any, error) {
	value, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("partner response is missing the %q collection", key)
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("partner %q collection is not an array", key)
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("partner %q collection holds a non-object element", key)
		}
		records = append(records, record)
	}
	return records, nil
}

// singleRecord applies the single-result invariant to a wrapped list response.
func singleRecord(envelope map[string]any, key string) (map[string]any, error) {
	records, err := listRecords(envelope, key)
	if err != nil {
		return nil, err
	}
	return onlyElement(records)
}
