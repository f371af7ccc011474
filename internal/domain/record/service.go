package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Service implements the record query engine on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

type Servicer interface {
	List(ctx context.Context, owner string, page PageRequest, order SortOrder) (ListResponse, error)
	Find(ctx context.Context, owner string, id int64) (*Record, error)
	ByDateRange(ctx context.Context, owner, start, end string, page PageRequest) (DateRangeResponse, error)
	SearchTags(ctx context.Context, owner, tags string, matchAll bool, page PageRequest) (TagSearchResponse, error)
	SearchKeyword(ctx context.Context, owner, keyword string, page PageRequest) (KeywordSearchResponse, error)
	Tags(ctx context.Context, owner string) (TagsResponse, error)
	Stats(ctx context.Context, owner string, period Period) (StatsResponse, error)

	Create(ctx context.Context, owner string, req CreateRequest) (*Record, error)
	BulkCreate(ctx context.Context, owner string, reqs []CreateRequest) (BulkCreateResponse, error)
	Update(ctx context.Context, owner string, id int64, req UpdateRequest) (*Record, error)
	Delete(ctx context.Context, owner string, id int64) error
	DeleteAll(ctx context.Context, owner string) (int64, error)
}

// NewService creates a new record service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "record_service"),
		now:  time.Now,
	}
}

// List returns one page of the owner's records ordered by date.
func (s *Service) List(ctx context.Context, owner string, page PageRequest, order SortOrder) (ListResponse, error) {
	if order != SortDateAsc {
		order = SortDateDesc
	}
	records, p, err := s.page(ctx, Query{Owner: owner, Sort: order}, page)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list records: %w", err)
	}
	return ListResponse{Records: items(records), Pagination: p}, nil
}

// Find loads a record. Existence is checked before ownership.
func (s *Service) Find(ctx context.Context, owner string, id int64) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get record", "record_id", id, "owner", owner, "error", err)
		return nil, fmt.Errorf("find record: %w", err)
	}
	if rec.Owner != owner {
		return nil, ErrForbidden
	}
	rec.Tags = NormalizeTags(rec.Tags)
	return rec, nil
}

// ByDateRange pages through records dated within [start, end], newest first.
// An inverted range is not an error; it matches nothing.
func (s *Service) ByDateRange(ctx context.Context, owner, start, end string, page PageRequest) (DateRangeResponse, error) {
	from, err := ParseDate(start)
	if err != nil {
		return DateRangeResponse{}, fmt.Errorf("%w: start_date %q is not a valid YYYY-MM-DD date", ErrInvalidArgument, start)
	}
	to, err := ParseDate(end)
	if err != nil {
		return DateRangeResponse{}, fmt.Errorf("%w: end_date %q is not a valid YYYY-MM-DD date", ErrInvalidArgument, end)
	}

	q := Query{Owner: owner, From: &from, To: &to, Sort: SortDateDesc}
	records, p, err := s.page(ctx, q, page)
	if err != nil {
		return DateRangeResponse{}, fmt.Errorf("records by date range: %w", err)
	}
	return DateRangeResponse{
		Records:    items(records),
		DateRange:  DateRange{StartDate: start, EndDate: end},
		Pagination: p,
	}, nil
}

// SearchTags pages through records carrying any (or, with matchAll, every) tag of the list.
func (s *Service) SearchTags(ctx context.Context, owner, tags string, matchAll bool, page PageRequest) (TagSearchResponse, error) {
	list := SplitTagList(tags)
	if len(list) == 0 {
		return TagSearchResponse{}, fmt.Errorf("%w: at least one tag is required", ErrInvalidArgument)
	}

	q := Query{Owner: owner, Tags: list, MatchAll: matchAll, Sort: SortDateDesc}
	records, p, err := s.page(ctx, q, page)
	if err != nil {
		return TagSearchResponse{}, fmt.Errorf("search by tags: %w", err)
	}
	return TagSearchResponse{
		Records:        items(records),
		SearchCriteria: TagCriteria{Tags: list, MatchAll: matchAll},
		Pagination:     p,
	}, nil
}

// SearchKeyword pages through records whose content contains keyword, case-insensitively.
func (s *Service) SearchKeyword(ctx context.Context, owner, keyword string, page PageRequest) (KeywordSearchResponse, error) {
	q := Query{Owner: owner, Keyword: keyword, Sort: SortDateDesc}
	records, p, err := s.page(ctx, q, page)
	if err != nil {
		return KeywordSearchResponse{}, fmt.Errorf("search by keyword: %w", err)
	}
	return KeywordSearchResponse{
		Records:        items(records),
		SearchCriteria: KeywordCriteria{Keyword: keyword},
		Pagination:     p,
	}, nil
}

// Tags counts every tag the owner has used.
func (s *Service) Tags(ctx context.Context, owner string) (TagsResponse, error) {
	records, err := s.repo.Find(ctx, Query{Owner: owner, Sort: SortInsertion})
	if err != nil {
		s.log.Error("failed to load records for tags", "owner", owner, "error", err)
		return TagsResponse{}, fmt.Errorf("count tags: %w", err)
	}
	counts := CountTags(records)
	return TagsResponse{Tags: counts, TotalTags: len(counts)}, nil
}

// Stats summarises the owner's records inside a relative period. Only a lower
// bound is applied, so future-dated records count as in period.
func (s *Service) Stats(ctx context.Context, owner string, period Period) (StatsResponse, error) {
	total, err := s.repo.Count(ctx, Query{Owner: owner})
	if err != nil {
		s.log.Error("failed to count records", "owner", owner, "error", err)
		return StatsResponse{}, fmt.Errorf("stats: %w", err)
	}

	today := Day(s.now())
	q := Query{Owner: owner, Sort: SortInsertion}
	var startDate *string
	if days, ok := period.Days(); ok {
		from := today.AddDate(0, 0, -days)
		q.From = &from
		formatted := FormatDate(from)
		startDate = &formatted
	}

	records, err := s.repo.Find(ctx, q)
	if err != nil {
		s.log.Error("failed to load records for stats", "owner", owner, "period", period, "error", err)
		return StatsResponse{}, fmt.Errorf("stats: %w", err)
	}

	return StatsResponse{
		Period:          period.String(),
		TotalRecords:    total,
		RecordsInPeriod: len(records),
		MostUsedTags:    TopTags(records, 5),
		RecordsByDate:   CountDates(records),
		DateRange: StatsRange{
			StartDate: startDate,
			EndDate:   FormatDate(today),
		},
	}, nil
}

// Create stores a new record for owner.
func (s *Service) Create(ctx context.Context, owner string, req CreateRequest) (*Record, error) {
	rec, err := newRecord(owner, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create record", "owner", owner, "error", err)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created", "record_id", rec.ID, "owner", owner)
	return rec, nil
}

// BulkCreate stores every entry with a valid date in one batch. Entries with
// an invalid date are skipped and reported in the response.
func (s *Service) BulkCreate(ctx context.Context, owner string, reqs []CreateRequest) (BulkCreateResponse, error) {
	resp := BulkCreateResponse{Records: []Item{}, Skipped: []SkippedEntry{}}
	recs := make([]*Record, 0, len(reqs))
	for i, req := range reqs {
		rec, err := newRecord(owner, req)
		if err != nil {
			s.log.Warn("skipping bulk entry", "owner", owner, "index", i, "error", err)
			resp.Skipped = append(resp.Skipped, SkippedEntry{Index: i, Error: err.Error()})
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) > 0 {
		if err := s.repo.CreateBatch(ctx, recs); err != nil {
			s.log.Error("failed to create records in batch", "owner", owner, "count", len(recs), "error", err)
			return BulkCreateResponse{}, fmt.Errorf("bulk create records: %w", err)
		}
	}

	for _, rec := range recs {
		resp.Records = append(resp.Records, rec.Item())
	}
	resp.Count = len(recs)

	s.log.Info("records created in batch", "owner", owner, "count", resp.Count, "skipped", len(resp.Skipped))
	return resp, nil
}

// Update applies a partial update. The patch is validated in full before the
// stored record is touched.
func (s *Service) Update(ctx context.Context, owner string, id int64, req UpdateRequest) (*Record, error) {
	current, err := s.Find(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.RecordDate != nil {
		d, err := ParseDate(*req.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("%w: record_date %q is not a valid YYYY-MM-DD date", ErrInvalidArgument, *req.RecordDate)
		}
		updated.OccurredOn = d
	}
	if req.Tags != nil {
		updated.Tags = append([]string{}, req.Tags...)
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update record", "record_id", id, "owner", owner, "error", err)
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.log.Info("record updated", "record_id", id, "owner", owner)
	return &updated, nil
}

// Delete permanently removes a record.
func (s *Service) Delete(ctx context.Context, owner string, id int64) error {
	if _, err := s.Find(ctx, owner, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "owner", owner, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	s.log.Info("record deleted", "record_id", id, "owner", owner)
	return nil
}

// DeleteAll removes all of the owner's records.
func (s *Service) DeleteAll(ctx context.Context, owner string) (int64, error) {
	n, err := s.repo.DeleteByOwner(ctx, owner)
	if err != nil {
		s.log.Error("failed to delete records", "owner", owner, "error", err)
		return 0, fmt.Errorf("delete all records: %w", err)
	}

	s.log.Info("records deleted", "owner", owner, "count", n)
	return n, nil
}

func (s *Service) page(ctx context.Context, q Query, page PageRequest) ([]Record, Pagination, error) {
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		s.log.Error("failed to count records", "owner", q.Owner, "error", err)
		return nil, Pagination{}, err
	}
	if page.Beyond(total) {
		return []Record{}, NewPagination(page, total), nil
	}

	q.Offset = page.Offset()
	q.Limit = page.Limit
	records, err := s.repo.Find(ctx, q)
	if err != nil {
		s.log.Error("failed to find records", "owner", q.Owner, "error", err)
		return nil, Pagination{}, err
	}
	if records == nil {
		records = []Record{}
	}

	return records, NewPagination(page, total), nil
}

func newRecord(owner string, req CreateRequest) (*Record, error) {
	d, err := ParseDate(req.RecordDate)
	if err != nil {
		return nil, fmt.Errorf("%w: record_date %q is not a valid YYYY-MM-DD date", ErrInvalidArgument, req.RecordDate)
	}
	return &Record{
		Owner:      owner,
		Content:    req.Content,
		OccurredOn: d,
		Tags:       append([]string{}, req.Tags...),
	}, nil
}
