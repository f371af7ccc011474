package record

import (
	"time"
)

// Item is the wire form of a Record.
type Item struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	RecordDate string    `json:"record_date" example:"2024-05-01"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	Limit        int  `json:"limit"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

type ListResponse struct {
	Records    []Item     `json:"records"`
	Pagination Pagination `json:"pagination"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DateRangeResponse struct {
	Records    []Item     `json:"records"`
	DateRange  DateRange  `json:"date_range"`
	Pagination Pagination `json:"pagination"`
}

type TagCriteria struct {
	Tags     []string `json:"tags"`
	MatchAll bool     `json:"match_all"`
}

type TagSearchResponse struct {
	Records        []Item      `json:"records"`
	SearchCriteria TagCriteria `json:"search_criteria"`
	Pagination     Pagination  `json:"pagination"`
}

type KeywordCriteria struct {
	Keyword string `json:"keyword"`
}

type KeywordSearchResponse struct {
	Records        []Item          `json:"records"`
	SearchCriteria KeywordCriteria `json:"search_criteria"`
	Pagination     Pagination      `json:"pagination"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TagsResponse struct {
	Tags      []TagCount `json:"tags"`
	TotalTags int        `json:"total_tags"`
}

// StatsRange reports the window used; StartDate is nil for an unbounded period.
type StatsRange struct {
	StartDate *string `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type StatsResponse struct {
	Period          string      `json:"period"`
	TotalRecords    int         `json:"total_records"`
	RecordsInPeriod int         `json:"records_in_period"`
	MostUsedTags    []TagCount  `json:"most_used_tags"`
	RecordsByDate   []DateCount `json:"records_by_date"`
	DateRange       StatsRange  `json:"date_range"`
}

type CreateRequest struct {
	Content    string   `json:"content" doc:"Free-form entry text"`
	RecordDate string   `json:"record_date" doc:"Calendar date, YYYY-MM-DD" example:"2024-05-01"`
	Tags       []string `json:"tags,omitempty" doc:"Ordered tag list, duplicates allowed"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Content    *string  `json:"content,omitempty"`
	RecordDate *string  `json:"record_date,omitempty" example:"2024-05-01"`
	Tags       []string `json:"tags,omitempty" doc:"Replaces the whole tag list when present"`
}

type BulkCreateResponse struct {
	Records []Item         `json:"records"`
	Count   int            `json:"count"`
	Skipped []SkippedEntry `json:"skipped"`
}

// SkippedEntry describes a bulk entry that was not stored.
type SkippedEntry struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}
