package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"history/internal/domain/record"
)

const selectRecord = "SELECT id, user_id, content, record_date, tags, created_at, updated_at FROM history"

type RecordRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewRecordRepository(db *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Find(ctx context.Context, q record.Query) ([]record.Record, error) {
	where, args := whereClause(q)
	query := selectRecord + " WHERE " + where + " ORDER BY " + orderBy(q.Sort)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
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
	if err := r.db.Pool().QueryRow(ctx, "SELECT count(*) FROM history WHERE "+where, args...).Scan(&n); err != nil {
		r.log.Error("failed to count records", "owner", q.Owner, "error", err)
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *RecordRepository) Get(ctx context.Context, id int64) (*record.Record, error) {
	rec, err := scanRecord(r.db.Pool().QueryRow(ctx, selectRecord+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

const insertRecord = "INSERT INTO history (user_id, content, record_date, tags) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at"

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	err := r.db.Pool().QueryRow(ctx, insertRecord,
		rec.Owner, rec.Content, rec.OccurredOn, record.NormalizeTags(rec.Tags),
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		r.log.Error("failed to insert record", "owner", rec.Owner, "error", err)
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) CreateBatch(ctx context.Context, recs []*record.Record) (err error) {
	tx, err := r.db.Pool().BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i, rec := range recs {
		err = tx.QueryRow(ctx, insertRecord,
			rec.Owner, rec.Content, rec.OccurredOn, record.NormalizeTags(rec.Tags),
		).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			r.log.Error("failed to insert record in batch", "owner", rec.Owner, "index", i, "error", err)
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *RecordRepository) Update(ctx context.Context, rec *record.Record) error {
	const query = "UPDATE history SET content = $2, record_date = $3, tags = $4, updated_at = now() WHERE id = $1 RETURNING updated_at"

	err := r.db.Pool().QueryRow(ctx, query,
		rec.ID, rec.Content, rec.OccurredOn, record.NormalizeTags(rec.Tags),
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.ErrNotFound
		}
		r.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool().Exec(ctx, "DELETE FROM history WHERE id = $1", id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	tag, err := r.db.Pool().Exec(ctx, "DELETE FROM history WHERE user_id = $1", owner)
	if err != nil {
		r.log.Error("failed to delete records", "owner", owner, "error", err)
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (*record.Record, error) {
	var (
		rec  record.Record
		tags []string
	)
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.Content, &rec.OccurredOn, &tags, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.OccurredOn = record.Day(rec.OccurredOn)
	rec.Tags = record.NormalizeTags(tags)
	return &rec, nil
}

// whereClause translates the filter part of q. Placeholders start at $1 with the owner.
func whereClause(q record.Query) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{q.Owner}
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if q.From != nil {
		add("record_date >= $%d", *q.From)
	}
	if q.To != nil {
		add("record_date <= $%d", *q.To)
	}
	if len(q.Tags) > 0 {
		if q.MatchAll {
			add("tags @> $%d", q.Tags)
		} else {
			add("tags && $%d", q.Tags)
		}
	}
	if q.Keyword != "" {
		add(`content ILIKE $%d ESCAPE '\'`, "%"+escapeLike(q.Keyword)+"%")
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
