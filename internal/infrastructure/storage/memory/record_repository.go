// Package memory keeps records in process memory. It backs local runs and tests
// and serves as the executable definition of record.Query semantics.
package memory

import (
	"context"
	"sync"
	"time"

	"history/internal/domain/record"
)

type RecordRepository struct {
	mu      sync.RWMutex
	records map[int64]record.Record
	nextID  int64
	now     func() time.Time
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[int64]record.Record),
		now:     time.Now,
	}
}

func (r *RecordRepository) Find(_ context.Context, q record.Query) ([]record.Record, error) {
	r.mu.RLock()
	matched := r.match(q)
	r.mu.RUnlock()

	record.SortRecords(matched, q.Sort)
	return record.Window(matched, q.Offset, q.Limit), nil
}

func (r *RecordRepository) Count(_ context.Context, q record.Query) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.match(q)), nil
}

func (r *RecordRepository) Get(_ context.Context, id int64) (*record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	rec = clone(rec)
	return &rec, nil
}

func (r *RecordRepository) Create(_ context.Context, rec *record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(rec)
	return nil
}

func (r *RecordRepository) CreateBatch(_ context.Context, recs []*record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range recs {
		r.insert(rec)
	}
	return nil
}

func (r *RecordRepository) Update(_ context.Context, rec *record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok {
		return record.ErrNotFound
	}
	stored.Content = rec.Content
	stored.OccurredOn = rec.OccurredOn
	stored.Tags = record.NormalizeTags(append([]string(nil), rec.Tags...))
	stored.UpdatedAt = r.now().UTC()
	r.records[rec.ID] = stored

	rec.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *RecordRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return record.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *RecordRepository) DeleteByOwner(_ context.Context, owner string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, rec := range r.records {
		if rec.Owner == owner {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *RecordRepository) insert(rec *record.Record) {
	r.nextID++
	now := r.now().UTC()
	rec.ID = r.nextID
	rec.Tags = record.NormalizeTags(rec.Tags)
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = clone(*rec)
}

// match must be called with r.mu held.
func (r *RecordRepository) match(q record.Query) []record.Record {
	out := make([]record.Record, 0)
	for _, rec := range r.records {
		if q.Match(rec) {
			out = append(out, clone(rec))
		}
	}
	return out
}

func clone(rec record.Record) record.Record {
	rec.Tags = append([]string{}, rec.Tags...)
	return rec
}
