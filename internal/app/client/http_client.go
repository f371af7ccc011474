package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"history/internal/app/client/config"
	"history/internal/domain/record"
)

// APIError is a failed response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Page selects one page of a listing. Zero values fall back to server defaults.
type Page struct {
	Page  int
	Limit int
}

func (p Page) apply(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DeleteResult struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deleted_id"`
}

type DeleteAllResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log,
		baseURL:   cfg.BaseURL(),
		userAgent: "History-Client/1.0",
	}
}

func (h *httpClient) SetToken(token string) {
	h.token = token
}

// Health is the only endpoint answering outside the envelope.
func (h *httpClient) Health(ctx context.Context) (*Health, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}

	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &out, nil
}

func (h *httpClient) ListRecords(ctx context.Context, page Page, sort string) (*record.ListResponse, error) {
	q := url.Values{}
	page.apply(q)
	if sort != "" {
		q.Set("sort", sort)
	}

	var out record.ListResponse
	if err := h.call(ctx, http.MethodGet, "/api/records", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) GetRecord(ctx context.Context, id int64) (*record.Item, error) {
	var out record.Item
	if err := h.call(ctx, http.MethodGet, recordPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) CreateRecord(ctx context.Context, req record.CreateRequest) (*record.Item, error) {
	var out record.Item
	if err := h.call(ctx, http.MethodPost, "/api/records", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) BulkCreate(ctx context.Context, reqs []record.CreateRequest) (*record.BulkCreateResponse, error) {
	var out record.BulkCreateResponse
	if err := h.call(ctx, http.MethodPost, "/api/records/bulk", nil, reqs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord sends only the fields set in req. A non-nil empty Tags
// clears the tag list.
func (h *httpClient) UpdateRecord(ctx context.Context, id int64, req record.UpdateRequest) (*record.Item, error) {
	body := map[string]any{}
	if req.Content != nil {
		body["content"] = *req.Content
	}
	if req.RecordDate != nil {
		body["record_date"] = *req.RecordDate
	}
	if req.Tags != nil {
		body["tags"] = req.Tags
	}

	var out record.Item
	if err := h.call(ctx, http.MethodPut, recordPath(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) DeleteRecord(ctx context.Context, id int64) (*DeleteResult, error) {
	var out DeleteResult
	if err := h.call(ctx, http.MethodDelete, recordPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) DeleteAll(ctx context.Context) (*DeleteAllResult, error) {
	var out DeleteAllResult
	if err := h.call(ctx, http.MethodDelete, "/api/records", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) DateRange(ctx context.Context, start, end string, page Page) (*record.DateRangeResponse, error) {
	q := url.Values{"start_date": {start}, "end_date": {end}}
	page.apply(q)

	var out record.DateRangeResponse
	if err := h.call(ctx, http.MethodGet, "/api/records/date-range", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) SearchTags(ctx context.Context, tags string, matchAll bool, page Page) (*record.TagSearchResponse, error) {
	q := url.Values{"tags": {tags}, "match_all": {strconv.FormatBool(matchAll)}}
	page.apply(q)

	var out record.TagSearchResponse
	if err := h.call(ctx, http.MethodGet, "/api/records/search/tags", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) SearchKeyword(ctx context.Context, keyword string, page Page) (*record.KeywordSearchResponse, error) {
	q := url.Values{"q": {keyword}}
	page.apply(q)

	var out record.KeywordSearchResponse
	if err := h.call(ctx, http.MethodGet, "/api/records/search/keyword", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) Tags(ctx context.Context) (*record.TagsResponse, error) {
	var out record.TagsResponse
	if err := h.call(ctx, http.MethodGet, "/api/records/tags", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) Stats(ctx context.Context, period string) (*record.StatsResponse, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}

	var out record.StatsResponse
	if err := h.call(ctx, http.MethodGet, "/api/records/stats", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func recordPath(id int64) string {
	return "/api/records/" + strconv.FormatInt(id, 10)
}

func (h *httpClient) call(ctx context.Context, method, path string, query url.Values, body, result any) error {
	resp, err := h.doRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	target := h.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("response received", "status", resp.StatusCode, "bytes", len(body))

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode >= 400 || (decodeErr == nil && !env.Success) {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
