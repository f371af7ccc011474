package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) op(id, method, path, summary string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"records"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return h.op("records-list", http.MethodGet, "/api/records", "List records")
}

func (h *Handler) createOp() huma.Operation {
	op := h.op("records-create", http.MethodPost, "/api/records", "Create a record")
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) deleteAllOp() huma.Operation {
	op := h.op("records-delete-all", http.MethodDelete, "/api/records", "Delete all records")
	op.Description = "Permanently removes every record of the caller."
	return op
}

func (h *Handler) bulkCreateOp() huma.Operation {
	op := h.op("records-bulk-create", http.MethodPost, "/api/records/bulk", "Create records in bulk")
	op.Description = "Entries with an invalid record_date are skipped and listed in the response; the rest are stored together."
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) tagsOp() huma.Operation {
	return h.op("records-tags", http.MethodGet, "/api/records/tags", "Tag usage counts")
}

func (h *Handler) statsOp() huma.Operation {
	return h.op("records-stats", http.MethodGet, "/api/records/stats", "Record statistics for a period")
}

func (h *Handler) dateRangeOp() huma.Operation {
	return h.op("records-date-range", http.MethodGet, "/api/records/date-range", "Records within a date range")
}

func (h *Handler) searchTagsOp() huma.Operation {
	return h.op("records-search-tags", http.MethodGet, "/api/records/search/tags", "Search records by tags")
}

func (h *Handler) searchKeywordOp() huma.Operation {
	return h.op("records-search-keyword", http.MethodGet, "/api/records/search/keyword", "Search records by keyword")
}

func (h *Handler) findOp() huma.Operation {
	return h.op("records-find", http.MethodGet, "/api/records/{id}", "Get a record")
}

func (h *Handler) updateOp() huma.Operation {
	op := h.op("records-update", http.MethodPut, "/api/records/{id}", "Update a record")
	op.Description = "Only the fields present in the body are changed. tags replaces the whole list."
	return op
}

func (h *Handler) deleteOp() huma.Operation {
	return h.op("records-delete", http.MethodDelete, "/api/records/{id}", "Delete a record")
}
