package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"econfeed/core/errs"
)

// GetJSON issues a GET request and decodes the JSON response into out.
// Network failures and 5xx responses come back as TransientSourceError so
// the retry loop picks them up; 4xx responses and body decode failures are
// terminal.
func GetJSON(ctx context.Context, client *http.Client, source, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return doJSON(client, source, req, out)
}

// PostJSON issues a POST request with a JSON body and decodes the JSON
// response into out. Error classification matches GetJSON.
func PostJSON(ctx context.Context, client *http.Client, source, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return doJSON(client, source, req, out)
}

func doJSON(client *http.Client, source string, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return &errs.TransientSourceError{Source: source, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		// Drain so the connection can be reused across retries.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &errs.TransientSourceError{Source: source, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: unexpected status %d: %s", source, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Validation(source, "decode response: %v", err)
	}
	return nil
}
