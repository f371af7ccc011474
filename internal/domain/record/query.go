package record

import (
	"sort"
	"strings"
	"time"
)

// Query is the predicate, order and window the engine hands to a Repository.
// Zero values mean "no constraint": nil bounds, empty Tags, empty Keyword and
// Limit 0 all disable their filter.
type Query struct {
	Owner    string
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Tags     []string
	MatchAll bool
	Keyword  string
	Sort     SortOrder
	Offset   int
	Limit    int
}

// Match reports whether r satisfies the filter part of q.
// SQL stores must agree with it.
func (q Query) Match(r Record) bool {
	if r.Owner != q.Owner {
		return false
	}
	if q.From != nil && r.OccurredOn.Before(*q.From) {
		return false
	}
	if q.To != nil && r.OccurredOn.After(*q.To) {
		return false
	}
	if len(q.Tags) > 0 && !matchTags(r.Tags, q.Tags, q.MatchAll) {
		return false
	}
	if q.Keyword != "" && !ContainsFold(r.Content, q.Keyword) {
		return false
	}
	return true
}

func matchTags(have, want []string, all bool) bool {
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		_, ok := set[t]
		if all && !ok {
			return false
		}
		if !all && ok {
			return true
		}
	}
	return all
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortRecords orders records in place. Ties on date fall back to id in the
// same direction so paging is stable.
func SortRecords(records []Record, order SortOrder) {
	switch order {
	case SortDateAsc:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i], records[j]
			if !a.OccurredOn.Equal(b.OccurredOn) {
				return a.OccurredOn.Before(b.OccurredOn)
			}
			return a.ID < b.ID
		})
	case SortInsertion:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ID < records[j].ID
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i], records[j]
			if !a.OccurredOn.Equal(b.OccurredOn) {
				return a.OccurredOn.After(b.OccurredOn)
			}
			return a.ID > b.ID
		})
	}
}

// Window slices records to [offset, offset+limit). A zero limit keeps the tail.
func Window(records []Record, offset, limit int) []Record {
	if offset >= len(records) {
		return []Record{}
	}
	if offset < 0 {
		offset = 0
	}
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return records[offset:end]
}
