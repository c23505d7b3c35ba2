package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"budget-control/internal/model"
)

// HTTPSource fetches series documents from another budget-control API (or
// any service exposing GET <BaseURL>/series/<key> with the same JSON shape).
type HTTPSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPSource(baseURL, apiKey string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SourceError is a non-2xx answer from a remote source.
type SourceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *SourceError) Error() string {
	return e.Message
}

func (s *HTTPSource) FetchSeries(ctx context.Context, key string) (model.TimeSeries, error) {
	if strings.TrimSpace(key) == "" {
		return model.TimeSeries{}, model.Invalid("key", "must not be empty")
	}
	u, err := url.Parse(s.BaseURL + "/series/" + escapeKey(key))
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("invalid base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	start := time.Now()
	resp, err := s.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[HTTPSource] Request failed: %v (key=%s, duration: %v)", err, key, duration)
		return model.TimeSeries{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[HTTPSource] Response: %s (key=%s, duration: %v)", resp.Status, key, duration)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return model.TimeSeries{}, fmt.Errorf("%w: %s", ErrSeriesNotFound, key)
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.TimeSeries{}, &SourceError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "series source rejected the API key",
		}
	default:
		return model.TimeSeries{}, &SourceError{
			StatusCode: resp.StatusCode,
			Code:       "SOURCE_ERROR",
			Message:    fmt.Sprintf("series source returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var doc model.SeriesDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.TimeSeries{}, fmt.Errorf("failed to decode response: %w", err)
	}
	ts := doc.Series()
	if ts.Key == "" {
		ts.Key = key
	}
	if err := ts.Validate(1); err != nil {
		return model.TimeSeries{}, err
	}
	return ts, nil
}

// escapeKey escapes each segment so "sales/monthly" keeps its slash.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
