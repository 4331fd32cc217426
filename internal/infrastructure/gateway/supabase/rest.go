package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/travelops/console-service/internal/core/gateway"
)

// restStore implements gateway.Store against the PostgREST query endpoint.
type restStore struct {
	client *Client
}

// restError is the error body returned by the REST endpoint.
type restError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Select executes a read query and decodes the rows into dest.
func (s *restStore) Select(ctx context.Context, q gateway.Query, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildURL(q), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.client.setHeaders(req)
	if q.Single {
		// Request exactly one row as a bare object.
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	return s.do(req, dest)
}

// Insert creates a single row and decodes the created row into dest.
func (s *restStore) Insert(ctx context.Context, table string, payload interface{}, dest interface{}) error {
	return s.write(ctx, http.MethodPost, s.tableURL(table), payload, dest)
}

// Update modifies the row with the given id and decodes the updated row into dest.
func (s *restStore) Update(ctx context.Context, table, id string, payload interface{}, dest interface{}) error {
	u := s.tableURL(table) + "?id=eq." + url.QueryEscape(id)
	return s.write(ctx, http.MethodPatch, u, payload, dest)
}

// Count returns the number of rows matching the filters without transferring them.
func (s *restStore) Count(ctx context.Context, table string, filters []gateway.Filter) (int64, error) {
	q := gateway.Query{Table: table, Filters: filters}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.buildURL(q), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	s.client.setHeaders(req)
	req.Header.Set("Prefer", "count=exact")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("count query rejected: status %d", resp.StatusCode)
	}

	// Content-Range has the form "0-24/42"; the total follows the slash.
	contentRange := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(contentRange, "/")
	if idx < 0 {
		return 0, fmt.Errorf("missing count in content range %q", contentRange)
	}
	count, err := strconv.ParseInt(contentRange[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed count in content range %q", contentRange)
	}
	return count, nil
}

// write issues a single-row mutation and decodes the returned representation.
func (s *restStore) write(ctx context.Context, method, targetURL string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.client.setHeaders(req)
	req.Header.Set("Prefer", "return=representation")
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	return s.do(req, dest)
}

// do executes the request and decodes a success body into dest.
func (s *restStore) do(req *http.Request, dest interface{}) error {
	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeRESTError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// tableURL returns the REST endpoint for a table.
func (s *restStore) tableURL(table string) string {
	return s.client.baseURL + "/rest/v1/" + table
}

// buildURL encodes a Query into PostgREST query parameters.
func (s *restStore) buildURL(q gateway.Query) string {
	params := url.Values{}

	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	params.Set("select", sel)

	// Repeated params on one column are ANDed, so range filters like
	// gte+lt on the same column must not collapse.
	for _, f := range q.Filters {
		params.Add(f.Column, string(f.Op)+"."+f.Value)
	}
	if len(q.Or) > 0 {
		parts := make([]string, 0, len(q.Or))
		for _, f := range q.Or {
			parts = append(parts, f.Column+"."+string(f.Op)+"."+f.Value)
		}
		params.Set("or", "("+strings.Join(parts, ",")+")")
	}
	if q.Order != nil {
		direction := "asc"
		if q.Order.Descending {
			direction = "desc"
		}
		params.Set("order", q.Order.Column+"."+direction)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return s.tableURL(q.Table) + "?" + params.Encode()
}

// decodeRESTError converts a non-success response into an error carrying the
// gateway's message.
func decodeRESTError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var restErr restError
	if err := json.Unmarshal(body, &restErr); err == nil && restErr.Message != "" {
		return fmt.Errorf("query rejected: %s", restErr.Message)
	}
	return fmt.Errorf("query rejected: status %d", resp.StatusCode)
}
