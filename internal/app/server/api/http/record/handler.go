package record

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"history/internal/app/server/api/http/envelope"
	"history/internal/app/server/api/http/middleware/auth"
	"history/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "record_handler"),
		middleware: mws,
	}
}

// SetupRoutes registers the fixed paths before /api/records/{id}.
func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteAllOp(), h.deleteAll)
	huma.Register(api, h.bulkCreateOp(), h.bulkCreate)
	huma.Register(api, h.tagsOp(), h.tags)
	huma.Register(api, h.statsOp(), h.stats)
	huma.Register(api, h.dateRangeOp(), h.dateRange)
	huma.Register(api, h.searchTagsOp(), h.searchTags)
	huma.Register(api, h.searchKeywordOp(), h.searchKeyword)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.List(ctx, owner, input.request(), input.Sort)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*itemOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	rec, err := h.service.Find(ctx, owner, input.ID)
	if err != nil {
		return nil, h.fail(err)
	}
	return &itemOutput{Body: envelope.OK(rec.Item())}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*itemOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	rec, err := h.service.Create(ctx, owner, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &itemOutput{Body: envelope.OK(rec.Item())}, nil
}

func (h *Handler) bulkCreate(ctx context.Context, input *bulkCreateInput) (*bulkCreateOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.BulkCreate(ctx, owner, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &bulkCreateOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*itemOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	rec, err := h.service.Update(ctx, owner, input.ID, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &itemOutput{Body: envelope.OK(rec.Item())}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*deleteOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	if err := h.service.Delete(ctx, owner, input.ID); err != nil {
		return nil, h.fail(err)
	}
	return &deleteOutput{Body: envelope.OK(deleteResponse{
		Message:   "record deleted",
		DeletedID: input.ID,
	})}, nil
}

func (h *Handler) deleteAll(ctx context.Context, _ *struct{}) (*deleteAllOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	n, err := h.service.DeleteAll(ctx, owner)
	if err != nil {
		return nil, h.fail(err)
	}
	return &deleteAllOutput{Body: envelope.OK(deleteAllResponse{
		Message:      "all records deleted",
		DeletedCount: n,
	})}, nil
}

func (h *Handler) dateRange(ctx context.Context, input *dateRangeInput) (*dateRangeOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.ByDateRange(ctx, owner, input.StartDate, input.EndDate, input.request())
	if err != nil {
		return nil, h.fail(err)
	}
	return &dateRangeOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) searchTags(ctx context.Context, input *tagSearchInput) (*tagSearchOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.SearchTags(ctx, owner, input.Tags, input.MatchAll, input.request())
	if err != nil {
		return nil, h.fail(err)
	}
	return &tagSearchOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) searchKeyword(ctx context.Context, input *keywordSearchInput) (*keywordSearchOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.SearchKeyword(ctx, owner, input.Q, input.request())
	if err != nil {
		return nil, h.fail(err)
	}
	return &keywordSearchOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) tags(ctx context.Context, _ *struct{}) (*tagsOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.Tags(ctx, owner)
	if err != nil {
		return nil, h.fail(err)
	}
	return &tagsOutput{Body: envelope.OK(resp)}, nil
}

func (h *Handler) stats(ctx context.Context, input *statsInput) (*statsOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	resp, err := h.service.Stats(ctx, owner, record.Period(input.Period))
	if err != nil {
		return nil, h.fail(err)
	}
	return &statsOutput{Body: envelope.OK(resp)}, nil
}

// fail maps engine errors onto HTTP statuses. Unknown errors are logged and
// reported without detail.
func (h *Handler) fail(err error) error {
	switch {
	case errors.Is(err, record.ErrInvalidArgument):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, record.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	default:
		h.log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
