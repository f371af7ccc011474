package record

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"history/internal/app/server/api/http/envelope"
	"history/internal/app/server/api/http/middleware/auth"
	"history/internal/domain/record"
	"history/internal/domain/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, owner string, page record.PageRequest, order record.SortOrder) (record.ListResponse, error) {
	args := m.Called(ctx, owner, page, order)
	return args.Get(0).(record.ListResponse), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, owner string, id int64) (*record.Record, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) ByDateRange(ctx context.Context, owner, start, end string, page record.PageRequest) (record.DateRangeResponse, error) {
	args := m.Called(ctx, owner, start, end, page)
	return args.Get(0).(record.DateRangeResponse), args.Error(1)
}

func (m *MockService) SearchTags(ctx context.Context, owner, tags string, matchAll bool, page record.PageRequest) (record.TagSearchResponse, error) {
	args := m.Called(ctx, owner, tags, matchAll, page)
	return args.Get(0).(record.TagSearchResponse), args.Error(1)
}

func (m *MockService) SearchKeyword(ctx context.Context, owner, keyword string, page record.PageRequest) (record.KeywordSearchResponse, error) {
	args := m.Called(ctx, owner, keyword, page)
	return args.Get(0).(record.KeywordSearchResponse), args.Error(1)
}

func (m *MockService) Tags(ctx context.Context, owner string) (record.TagsResponse, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(record.TagsResponse), args.Error(1)
}

func (m *MockService) Stats(ctx context.Context, owner string, period record.Period) (record.StatsResponse, error) {
	args := m.Called(ctx, owner, period)
	return args.Get(0).(record.StatsResponse), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, owner string, req record.CreateRequest) (*record.Record, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) BulkCreate(ctx context.Context, owner string, reqs []record.CreateRequest) (record.BulkCreateResponse, error) {
	args := m.Called(ctx, owner, reqs)
	return args.Get(0).(record.BulkCreateResponse), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, owner string, id int64, req record.UpdateRequest) (*record.Record, error) {
	args := m.Called(ctx, owner, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, owner string, id int64) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockService) DeleteAll(ctx context.Context, owner string) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func sampleRecord() *record.Record {
	return &record.Record{
		ID:         1,
		Owner:      "u1",
		Content:    "trip",
		OccurredOn: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Tags:       []string{"travel"},
	}
}

func status(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected a huma status error, got %v", err)
	return se.GetStatus()
}

func TestHandler_Unauthorized(t *testing.T) {
	h := NewHandler(new(MockService), slog.Default(), nil)

	_, err := h.list(context.Background(), &listInput{})
	assert.Equal(t, http.StatusUnauthorized, status(t, err))

	_, err = h.find(context.Background(), &idInput{ID: 1})
	assert.Equal(t, http.StatusUnauthorized, status(t, err))
}

func TestHandler_find(t *testing.T) {
	tests := []struct {
		name       string
		rec        *record.Record
		err        error
		wantStatus int
	}{
		{name: "found", rec: sampleRecord()},
		{name: "not found", err: record.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: record.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "store failure", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, slog.Default(), nil)
			ctx := auth.WithOwner(context.Background(), "u1")

			if tt.rec != nil {
				svc.On("Find", ctx, "u1", int64(1)).Return(tt.rec, nil)
			} else {
				svc.On("Find", ctx, "u1", int64(1)).Return(nil, tt.err)
			}

			out, err := h.find(ctx, &idInput{ID: 1})
			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, status(t, err))
				return
			}
			require.NoError(t, err)
			assert.True(t, out.Body.Success)
			assert.Equal(t, "2024-05-01", out.Body.Data.RecordDate)
			assert.Equal(t, "u1", out.Body.Data.UserID)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_create_InvalidDate(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithOwner(context.Background(), "u1")
	req := record.CreateRequest{Content: "x", RecordDate: "2024-13-01"}

	svc.On("Create", ctx, "u1", req).Return(nil, record.ErrInvalidArgument)

	_, err := h.create(ctx, &createInput{Body: req})
	assert.Equal(t, http.StatusBadRequest, status(t, err))
}

func TestHandler_delete(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithOwner(context.Background(), "u1")

	svc.On("Delete", ctx, "u1", int64(7)).Return(nil)

	out, err := h.delete(ctx, &idInput{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Body.Data.DeletedID)
	assert.NotEmpty(t, out.Body.Data.Message)
}

func TestHandler_deleteAll(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithOwner(context.Background(), "u1")

	svc.On("DeleteAll", ctx, "u1").Return(int64(0), nil)

	out, err := h.deleteAll(ctx, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Body.Data.DeletedCount)
}

func TestHandler_stats_PassesPeriodThrough(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithOwner(context.Background(), "u1")

	svc.On("Stats", ctx, "u1", record.Period("decade")).
		Return(record.StatsResponse{Period: "decade"}, nil)

	out, err := h.stats(ctx, &statsInput{Period: "decade"})
	require.NoError(t, err)
	assert.Equal(t, "decade", out.Body.Data.Period)
}

// Routing tests go through huma: auth middleware, parameter defaults and
// validation, and the error envelope.

const secret = "test-secret"

func newTestAPI(t *testing.T, svc record.Servicer) (humatest.TestAPI, string) {
	t.Helper()
	envelope.Install()

	_, api := humatest.New(t)
	sessions := session.NewService(secret, time.Hour, slog.Default())
	authMW := auth.New(api, sessions, slog.Default())

	NewHandler(svc, slog.Default(), huma.Middlewares{authMW.Middleware()}).SetupRoutes(api)

	token, err := sessions.Create(context.Background(), "u1")
	require.NoError(t, err)
	return api, "Authorization: Bearer " + token
}

func decodeError(t *testing.T, body []byte) envelope.ErrorDetail {
	t.Helper()
	var resp struct {
		Success bool                 `json:"success"`
		Error   envelope.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Success)
	return resp.Error
}

func TestRoutes_RequireBearer(t *testing.T) {
	api, _ := newTestAPI(t, new(MockService))

	resp := api.Get("/api/records")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, envelope.CodeUnauthorized, decodeError(t, resp.Body.Bytes()).Code)

	resp = api.Get("/api/records", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRoutes_ListDefaults(t *testing.T) {
	svc := new(MockService)
	api, authz := newTestAPI(t, svc)

	svc.On("List", mock.Anything, "u1", record.PageRequest{Page: 1, Limit: 20}, record.SortDateDesc).
		Return(record.ListResponse{Records: []record.Item{}}, nil)

	resp := api.Get("/api/records", authz)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Success bool                `json:"success"`
		Data    record.ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	svc.AssertExpectations(t)
}

func TestRoutes_PageValidation(t *testing.T) {
	api, authz := newTestAPI(t, new(MockService))

	for _, path := range []string{
		"/api/records?page=0",
		"/api/records?limit=101",
		"/api/records?limit=0",
		"/api/records?sort=random",
		"/api/records/search/keyword",
		"/api/records/date-range?start_date=2024-01-01",
	} {
		resp := api.Get(path, authz)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, path)
		assert.Equal(t, envelope.CodeValidation, decodeError(t, resp.Body.Bytes()).Code, path)
	}
}

func TestRoutes_FixedPathsBeatID(t *testing.T) {
	svc := new(MockService)
	api, authz := newTestAPI(t, svc)

	svc.On("Tags", mock.Anything, "u1").Return(record.TagsResponse{Tags: []record.TagCount{}}, nil)
	svc.On("Stats", mock.Anything, "u1", record.PeriodMonth).Return(record.StatsResponse{Period: "month"}, nil)
	svc.On("SearchTags", mock.Anything, "u1", "travel,fun", true, record.PageRequest{Page: 2, Limit: 5}).
		Return(record.TagSearchResponse{}, nil)

	assert.Equal(t, http.StatusOK, api.Get("/api/records/tags", authz).Code)
	assert.Equal(t, http.StatusOK, api.Get("/api/records/stats", authz).Code)
	assert.Equal(t, http.StatusOK, api.Get("/api/records/search/tags?tags=travel,fun&match_all=true&page=2&limit=5", authz).Code)
	svc.AssertExpectations(t)
}

func TestRoutes_ErrorEnvelope(t *testing.T) {
	svc := new(MockService)
	api, authz := newTestAPI(t, svc)

	svc.On("Find", mock.Anything, "u1", int64(404)).Return(nil, record.ErrNotFound)
	svc.On("Find", mock.Anything, "u1", int64(403)).Return(nil, record.ErrForbidden)
	svc.On("ByDateRange", mock.Anything, "u1", "2024-02-30", "2024-03-01", record.PageRequest{Page: 1, Limit: 20}).
		Return(record.DateRangeResponse{}, errors.Join(record.ErrInvalidArgument, errors.New("bad start_date")))

	resp := api.Get("/api/records/404", authz)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, envelope.CodeNotFound, decodeError(t, resp.Body.Bytes()).Code)

	resp = api.Get("/api/records/403", authz)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, envelope.CodeForbidden, decodeError(t, resp.Body.Bytes()).Code)

	resp = api.Get("/api/records/date-range?start_date=2024-02-30&end_date=2024-03-01", authz)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, envelope.CodeBadRequest, decodeError(t, resp.Body.Bytes()).Code)
}

func TestRoutes_CreateAndBulk(t *testing.T) {
	svc := new(MockService)
	api, authz := newTestAPI(t, svc)

	req := record.CreateRequest{Content: "trip", RecordDate: "2024-05-01", Tags: []string{"travel"}}
	svc.On("Create", mock.Anything, "u1", req).Return(sampleRecord(), nil)

	bulk := []record.CreateRequest{{Content: "a", RecordDate: "not-a-date"}, {Content: "b", RecordDate: "2024-05-01"}}
	svc.On("BulkCreate", mock.Anything, "u1", bulk).Return(record.BulkCreateResponse{
		Records: []record.Item{sampleRecord().Item()},
		Count:   1,
		Skipped: []record.SkippedEntry{{Index: 0, Error: "bad date"}},
	}, nil)

	resp := api.Post("/api/records", authz, req)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = api.Post("/api/records/bulk", authz, bulk)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Data record.BulkCreateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Count)
	assert.Len(t, body.Data.Skipped, 1)

	resp = api.Post("/api/records", authz, map[string]any{"content": "missing date"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertExpectations(t)
}

func TestRoutes_UpdatePartial(t *testing.T) {
	svc := new(MockService)
	api, authz := newTestAPI(t, svc)

	content := "edited"
	svc.On("Update", mock.Anything, "u1", int64(1), record.UpdateRequest{Content: &content}).
		Return(sampleRecord(), nil)

	resp := api.Put("/api/records/1", authz, map[string]any{"content": "edited"})
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	svc.AssertExpectations(t)
}
