package record

import (
	"history/internal/app/server/api/http/envelope"
	"history/internal/domain/record"
)

type PageParams struct {
	Page  int `query:"page" default:"1" minimum:"1" doc:"Page number, starting at 1"`
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Records per page"`
}

func (p PageParams) request() record.PageRequest {
	return record.PageRequest{Page: p.Page, Limit: p.Limit}
}

type listInput struct {
	PageParams
	Sort record.SortOrder `query:"sort" default:"date_desc"`
}

type listOutput struct {
	Body envelope.Success[record.ListResponse]
}

type idInput struct {
	ID int64 `path:"id" example:"1" doc:"Record id"`
}

type itemOutput struct {
	Body envelope.Success[record.Item]
}

type createInput struct {
	Body record.CreateRequest
}

type bulkCreateInput struct {
	Body []record.CreateRequest
}

type bulkCreateOutput struct {
	Body envelope.Success[record.BulkCreateResponse]
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"Record id"`
	Body record.UpdateRequest
}

type deleteResponse struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deleted_id"`
}

type deleteOutput struct {
	Body envelope.Success[deleteResponse]
}

type deleteAllResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type deleteAllOutput struct {
	Body envelope.Success[deleteAllResponse]
}

type dateRangeInput struct {
	PageParams
	StartDate string `query:"start_date" required:"true" example:"2024-05-01" doc:"First day, YYYY-MM-DD"`
	EndDate   string `query:"end_date" required:"true" example:"2024-05-31" doc:"Last day, YYYY-MM-DD"`
}

type dateRangeOutput struct {
	Body envelope.Success[record.DateRangeResponse]
}

type tagSearchInput struct {
	PageParams
	Tags     string `query:"tags" required:"true" example:"travel,fun" doc:"Comma separated tag list"`
	MatchAll bool   `query:"match_all" default:"false" doc:"Require every tag instead of any"`
}

type tagSearchOutput struct {
	Body envelope.Success[record.TagSearchResponse]
}

type keywordSearchInput struct {
	PageParams
	Q string `query:"q" required:"true" minLength:"1" doc:"Case-insensitive substring of the content"`
}

type keywordSearchOutput struct {
	Body envelope.Success[record.KeywordSearchResponse]
}

type tagsOutput struct {
	Body envelope.Success[record.TagsResponse]
}

type statsInput struct {
	Period string `query:"period" default:"month" example:"week" doc:"week, month or year; anything else means all time"`
}

type statsOutput struct {
	Body envelope.Success[record.StatsResponse]
}
