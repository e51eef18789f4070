package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"context"
)

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to a hosted document service over its REST surface:
//
//	GET    {base}/v1/{path}
//	PUT    {base}/v1/{path}           (?merge=true for merged writes)
//	DELETE {base}/v1/{path}
//	GET    {base}/v1/{collection}?orderBy=f&desc=true   (collection listing)
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a document client for the service at baseURL.
// token, when non-empty, is sent as a bearer credential.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get fetches the document at path.
func (c *HTTPClient) Get(ctx context.Context, path string) (map[string]any, error) {
	var doc map[string]any
	if err := c.doRequest(ctx, http.MethodGet, "/v1/"+path, nil, &doc); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("remote.Get %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("remote.Get %s: %w", path, err)
	}
	return doc, nil
}

// Set writes doc at path, merging with any existing document when merge is set.
func (c *HTTPClient) Set(ctx context.Context, path string, doc map[string]any, merge bool) error {
	p := "/v1/" + path
	if merge {
		p += "?merge=true"
	}
	if err := c.doRequest(ctx, http.MethodPut, p, doc, nil); err != nil {
		return fmt.Errorf("remote.Set %s: %w", path, err)
	}
	return nil
}

// Delete removes the document at path.
func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	err := c.doRequest(ctx, http.MethodDelete, "/v1/"+path, nil, nil)
	if err != nil && !IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("remote.Delete %s: %w", path, err)
	}
	return nil
}

// Query lists the documents of a collection.
func (c *HTTPClient) Query(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	params := url.Values{}
	if orderBy != "" {
		params.Set("orderBy", orderBy)
	}
	if desc {
		params.Set("desc", "true")
	}

	var payload struct {
		Documents []struct {
			Path string         `json:"path"`
			Data map[string]any `json:"data"`
		} `json:"documents"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/v1/"+collection+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, fmt.Errorf("remote.Query %s: %w", collection, err)
	}

	docs := make([]Document, len(payload.Documents))
	for i, d := range payload.Documents {
		docs[i] = Document{Path: d.Path, Data: d.Data}
	}
	return docs, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
