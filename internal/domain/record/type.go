package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type SortOrder string

const (
	SortDateDesc SortOrder = "date_desc"
	SortDateAsc  SortOrder = "date_asc"
	// SortInsertion orders by id ascending. Used internally by aggregations.
	SortInsertion SortOrder = "insertion"
)

func (SortOrder) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(SortDateDesc),
			string(SortDateAsc),
		},
		Default:     string(SortDateDesc),
		Description: "Order by record date",
		Examples:    []any{SortDateDesc},
	}
}

// Validate reports an error for an order the store does not know.
func (s SortOrder) Validate() error {
	switch s {
	case "", SortDateDesc, SortDateAsc, SortInsertion:
		return nil
	}
	return fmt.Errorf("unknown sort order: %s", s)
}

func (s SortOrder) String() string {
	return string(s)
}

// Period names a relative statistics window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Days returns the window length; ok is false for an unbounded period.
func (p Period) Days() (days int, ok bool) {
	switch p {
	case PeriodWeek:
		return 7, true
	case PeriodMonth:
		return 30, true
	case PeriodYear:
		return 365, true
	default:
		return 0, false
	}
}

func (p Period) String() string {
	return string(p)
}
