package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pulsefeed/domain"
)

// httpClient talks JSON to the hosted record backend. It handles base URL
// construction and project key injection.
type httpClient struct {
	baseURL    string
	projectKey string
	http       *http.Client
}

// NewHTTP creates a Client backed by the hosted record API.
func NewHTTP(baseURL, projectKey string) Client {
	return &httpClient{
		baseURL:    baseURL,
		projectKey: projectKey,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *httpClient) FetchMany(ctx context.Context, collection string, q Query) ([]Record, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/query", collection)
	data, _, err := c.do(ctx, http.MethodPost, path, q)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", collection, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s records: %w", collection, err)
	}
	return records, nil
}

func (c *httpClient) FetchOne(ctx context.Context, collection, id string) (Record, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/records/%s", collection, id)
	data, notFound, err := c.do(ctx, http.MethodGet, path, nil)
	if notFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s: %w", collection, id, err)
	}
	return parseRecord(data)
}

func (c *httpClient) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/records", collection)
	data, _, err := c.do(ctx, http.MethodPost, path, rec)
	if err != nil {
		return nil, fmt.Errorf("creating %s record: %w", collection, err)
	}
	return parseRecord(data)
}

func (c *httpClient) Update(ctx context.Context, collection, id string, patch Record) (Record, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/records/%s", collection, id)
	data, notFound, err := c.do(ctx, http.MethodPatch, path, patch)
	if notFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	return parseRecord(data)
}

func (c *httpClient) Delete(ctx context.Context, collection, id string) (bool, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/records/%s", collection, id)
	_, notFound, err := c.do(ctx, http.MethodDelete, path, nil)
	if notFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// do performs one request and unwraps the response envelope. The notFound
// return distinguishes expected absence from transport failure.
func (c *httpClient) do(ctx context.Context, method, path string, body any) (data json.RawMessage, notFound bool, err error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, false, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Project-Key", c.projectKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading response: %v", domain.ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("%w: %s %s returned %d", domain.ErrUnavailable, method, path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("%w: parsing envelope: %v", domain.ErrUnavailable, err)
	}
	if !env.Success {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrUnavailable, env.Message)
	}
	return env.Data, false, nil
}

func parseRecord(data json.RawMessage) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	return rec, nil
}
