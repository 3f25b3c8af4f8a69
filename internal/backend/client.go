package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin HTTP client for the gift-alert backend JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client rooted at baseURL. A zero timeout
// leaves the transport default in place.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the root URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	path string,
	result interface{},
) error {
	_, err := c.do(ctx, http.MethodGet, path, nil, result)
	return err
}

// GetStatus is Get that also returns the response status code on
// success.
func (c *Client) GetStatus(
	ctx context.Context,
	path string,
	result interface{},
) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	_, err := c.do(ctx, http.MethodPost, path, body, result)
	return err
}

// detailResponse is the error body shape used by the backend.
type detailResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// do builds the request, executes it, and decodes the JSON response into
// result. Every failure is returned as an *Error.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) (int, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &Error{Kind: KindTransport, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &Error{
			Kind:       KindStatus,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(respBody),
		}
	}

	// No content to parse (e.g. 204).
	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return resp.StatusCode, &Error{
			Kind:       KindDecode,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return resp.StatusCode, nil
}

// parseDetail extracts the "detail" field of an error body. FastAPI sends
// either a string or a list of validation objects.
func parseDetail(body []byte) string {
	var d detailResponse
	if json.Unmarshal(body, &d) != nil || len(d.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(d.Detail, &s); err == nil {
		return s
	}
	return string(d.Detail)
}

// IsCanceled reports whether err came from a canceled context. Timeouts
// are not cancellations and stay transport failures.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
