package record

import (
	"time"
)

// DateLayout is the wire format of a record date.
const DateLayout = "2006-01-02"

// Record is a single diary entry owned by one user.
type Record struct {
	ID         int64
	Owner      string
	Content    string
	OccurredOn time.Time // calendar day, UTC midnight
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item converts the record into its wire representation.
func (r Record) Item() Item {
	return Item{
		ID:         r.ID,
		UserID:     r.Owner,
		Content:    r.Content,
		RecordDate: FormatDate(r.OccurredOn),
		Tags:       NormalizeTags(r.Tags),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
// Out-of-range days such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Day truncates t to its calendar day in t's location and returns it as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func items(records []Record) []Item {
	out := make([]Item, len(records))
	for i, r := range records {
		out[i] = r.Item()
	}
	return out
}
