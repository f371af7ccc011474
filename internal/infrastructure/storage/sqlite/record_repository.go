package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"history/internal/domain/record"
)

const selectRecord = "SELECT id, user_id, content, record_date, tags, created_at, updated_at FROM history"

type RecordRepository struct {
	db  *Storage
	log *slog.Logger
	now func() time.Time
}

func NewRecordRepository(db *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
		now: time.Now,
	}
}

func (r *RecordRepository) Find(ctx context.Context, q record.Query) ([]record.Record, error) {
	where, args := whereClause(q)
	query := selectRecord + " WHERE " + where + " ORDER BY " + orderBy(q.Sort)
	switch {
	case q.Limit > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	case q.Offset > 0:
		query += " LIMIT -1 OFFSET ?"
		args = append(args, q.Offset)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to find records", "owner", q.Owner, "error", err)
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer rows.Close()

	records := make([]record.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) Count(ctx context.Context, q record.Query) (int, error) {
	where, args := whereClause(q)

	var n int
	if err := r.db.DB().QueryRowContext(ctx, "SELECT count(*) FROM history WHERE "+where, args...).Scan(&n); err != nil {
		r.log.Error("failed to count records", "owner", q.Owner, "error", err)
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *RecordRepository) Get(ctx context.Context, id int64) (*record.Record, error) {
	rec, err := scanRecord(r.db.DB().QueryRowContext(ctx, selectRecord+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *RecordRepository) insert(ctx context.Context, db execer, rec *record.Record) error {
	now := r.now().UTC()
	res, err := db.ExecContext(ctx,
		"INSERT INTO history (user_id, content, record_date, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.Owner, rec.Content, record.FormatDate(rec.OccurredOn), record.EncodeTags(rec.Tags),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	if err := r.insert(ctx, r.db.DB(), rec); err != nil {
		r.log.Error("failed to insert record", "owner", rec.Owner, "error", err)
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) CreateBatch(ctx context.Context, recs []*record.Record) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, rec := range recs {
		if err := r.insert(ctx, tx, rec); err != nil {
			r.log.Error("failed to insert record in batch", "owner", rec.Owner, "index", i, "error", err)
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (r *RecordRepository) Update(ctx context.Context, rec *record.Record) error {
	now := r.now().UTC()
	res, err := r.db.DB().ExecContext(ctx,
		"UPDATE history SET content = ?, record_date = ?, tags = ?, updated_at = ? WHERE id = ?",
		rec.Content, record.FormatDate(rec.OccurredOn), record.EncodeTags(rec.Tags), formatTime(now), rec.ID,
	)
	if err != nil {
		r.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	rec.UpdatedAt = now
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.DB().ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	res, err := r.db.DB().ExecContext(ctx, "DELETE FROM history WHERE user_id = ?", owner)
	if err != nil {
		r.log.Error("failed to delete records", "owner", owner, "error", err)
		return 0, fmt.Errorf("delete records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*record.Record, error) {
	var (
		rec                  record.Record
		day, tags            string
		createdAt, updatedAt string
	)
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.Content, &day, &tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if rec.OccurredOn, err = record.ParseDate(day); err != nil {
		return nil, fmt.Errorf("record %d date %q: %w", rec.ID, day, err)
	}
	rec.Tags = record.NormalizeTags(tags)
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("record %d created_at %q: %w", rec.ID, createdAt, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("record %d updated_at %q: %w", rec.ID, updatedAt, err)
	}
	return &rec, nil
}

const tagExists = "EXISTS (SELECT 1 FROM json_each(history.tags) WHERE json_each.value = ?)"

func whereClause(q record.Query) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{q.Owner}

	if q.From != nil {
		conds = append(conds, "record_date >= ?")
		args = append(args, record.FormatDate(*q.From))
	}
	if q.To != nil {
		conds = append(conds, "record_date <= ?")
		args = append(args, record.FormatDate(*q.To))
	}
	if len(q.Tags) > 0 {
		parts := make([]string, len(q.Tags))
		for i, t := range q.Tags {
			parts[i] = tagExists
			args = append(args, t)
		}
		join := " OR "
		if q.MatchAll {
			join = " AND "
		}
		conds = append(conds, "("+strings.Join(parts, join)+")")
	}
	if q.Keyword != "" {
		conds = append(conds, "contains_fold(content, ?)")
		args = append(args, q.Keyword)
	}
	return strings.Join(conds, " AND "), args
}

func orderBy(order record.SortOrder) string {
	switch order {
	case record.SortDateAsc:
		return "record_date ASC, id ASC"
	case record.SortInsertion:
		return "id ASC"
	default:
		return "record_date DESC, id DESC"
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
