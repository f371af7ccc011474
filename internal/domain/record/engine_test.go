package record_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"history/internal/domain/record"
	"history/internal/infrastructure/storage/memory"
)

func newEngine(t *testing.T) (*record.Service, *memory.RecordRepository) {
	t.Helper()
	repo := memory.NewRecordRepository()
	return record.NewService(repo, slog.Default()), repo
}

func mustCreate(t *testing.T, svc *record.Service, owner, content, day string, tags ...string) *record.Record {
	t.Helper()
	rec, err := svc.Create(context.Background(), owner, record.CreateRequest{
		Content:    content,
		RecordDate: day,
		Tags:       tags,
	})
	require.NoError(t, err)
	return rec
}

func TestEngine_CreateThenFind(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "u1", "trip", "2024-05-01", "travel", "fun")

	got, err := svc.Find(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.Owner)
	assert.Equal(t, "trip", got.Content)
	assert.Equal(t, "2024-05-01", record.FormatDate(got.OccurredOn))
	assert.Equal(t, []string{"travel", "fun"}, got.Tags)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestEngine_OwnershipAndExistence(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	rec := mustCreate(t, svc, "a", "mine", "2024-05-01")

	_, err := svc.Find(ctx, "b", rec.ID)
	assert.ErrorIs(t, err, record.ErrForbidden)

	content := "stolen"
	_, err = svc.Update(ctx, "b", rec.ID, record.UpdateRequest{Content: &content})
	assert.ErrorIs(t, err, record.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, "b", rec.ID), record.ErrForbidden)

	for _, owner := range []string{"a", "b"} {
		_, err = svc.Find(ctx, owner, 999)
		assert.ErrorIs(t, err, record.ErrNotFound)
		_, err = svc.Update(ctx, owner, 999, record.UpdateRequest{})
		assert.ErrorIs(t, err, record.ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, owner, 999), record.ErrNotFound)
	}
}

func TestEngine_ListPaginationProperties(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		mustCreate(t, svc, "u1", fmt.Sprintf("entry %d", i), record.FormatDate(start.AddDate(0, 0, i)))
	}
	mustCreate(t, svc, "u2", "someone else", "2024-01-05")

	for _, limit := range []int{1, 5, 7, 23, 100} {
		for page := 1; page <= 30; page++ {
			resp, err := svc.List(ctx, "u1", record.PageRequest{Page: page, Limit: limit}, record.SortDateDesc)
			require.NoError(t, err)

			p := resp.Pagination
			assert.Equal(t, 23, p.TotalRecords)
			assert.Equal(t, (23+limit-1)/limit, p.TotalPages)
			assert.Equal(t, page < p.TotalPages, p.HasNext)
			assert.Equal(t, page > 1, p.HasPrev)
			if page > p.TotalPages {
				assert.Empty(t, resp.Records)
			} else {
				assert.Less(t, page*limit-limit, p.TotalRecords)
				assert.LessOrEqual(t, len(resp.Records), limit)
			}
			for _, it := range resp.Records {
				assert.Equal(t, "u1", it.UserID)
			}
		}
	}
}

func TestEngine_ListOrdering(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	mustCreate(t, svc, "u1", "middle", "2024-03-01")
	mustCreate(t, svc, "u1", "first", "2024-01-01")
	mustCreate(t, svc, "u1", "last", "2024-12-01")

	desc, err := svc.List(ctx, "u1", record.PageRequest{Page: 1, Limit: 10}, record.SortDateDesc)
	require.NoError(t, err)
	asc, err := svc.List(ctx, "u1", record.PageRequest{Page: 1, Limit: 10}, record.SortDateAsc)
	require.NoError(t, err)

	assert.Equal(t, []string{"last", "middle", "first"}, contents(desc.Records))
	assert.Equal(t, []string{"first", "middle", "last"}, contents(asc.Records))
}

func TestEngine_DateRange(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	mustCreate(t, svc, "u1", "before", "2024-04-30")
	mustCreate(t, svc, "u1", "start", "2024-05-01")
	mustCreate(t, svc, "u1", "end", "2024-05-31")
	mustCreate(t, svc, "u1", "after", "2024-06-01")

	resp, err := svc.ByDateRange(ctx, "u1", "2024-05-01", "2024-05-31", record.PageRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"end", "start"}, contents(resp.Records))

	inverted, err := svc.ByDateRange(ctx, "u1", "2024-05-31", "2024-05-01", record.PageRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, inverted.Records)
	assert.Equal(t, 0, inverted.Pagination.TotalRecords)
}

func TestEngine_TagSearchSemantics(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	mustCreate(t, svc, "u1", "both", "2024-05-01", "travel", "fun")
	mustCreate(t, svc, "u1", "travel only", "2024-05-02", "travel")
	mustCreate(t, svc, "u1", "fun only", "2024-05-03", "fun")
	mustCreate(t, svc, "u1", "none", "2024-05-04", "work")
	mustCreate(t, svc, "u1", "case", "2024-05-05", "Travel")

	all, err := svc.SearchTags(ctx, "u1", "travel, fun", true, record.PageRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"both"}, contents(all.Records))
	for _, it := range all.Records {
		assert.Subset(t, it.Tags, []string{"travel", "fun"})
	}

	anyOf, err := svc.SearchTags(ctx, "u1", "travel,fun", false, record.PageRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"both", "travel only", "fun only"}, contents(anyOf.Records))
	assert.Equal(t, record.TagCriteria{Tags: []string{"travel", "fun"}, MatchAll: false}, anyOf.SearchCriteria)
}

func TestEngine_KeywordSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	mustCreate(t, svc, "u1", "Hello World", "2024-05-01")
	mustCreate(t, svc, "u1", "goodbye", "2024-05-02")
	mustCreate(t, svc, "u2", "hello from u2", "2024-05-02")

	resp, err := svc.SearchKeyword(ctx, "u1", "hello", record.PageRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World"}, contents(resp.Records))
	assert.Equal(t, "hello", resp.SearchCriteria.Keyword)
}

func TestEngine_TagAggregation(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	mustCreate(t, svc, "u1", "a", "2024-05-01", "fun")
	mustCreate(t, svc, "u1", "b", "2024-05-02", "fun")

	resp, err := svc.Tags(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []record.TagCount{{Tag: "fun", Count: 2}}, resp.Tags)
	assert.Equal(t, 1, resp.TotalTags)
}

func TestEngine_StatsWeekWindow(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	today := record.Day(time.Now())
	mustCreate(t, svc, "u1", "old", record.FormatDate(today.AddDate(0, 0, -10)), "old")
	mustCreate(t, svc, "u1", "recent", record.FormatDate(today.AddDate(0, 0, -2)), "new")
	mustCreate(t, svc, "u1", "future", record.FormatDate(today.AddDate(0, 0, 3)), "new")

	resp, err := svc.Stats(ctx, "u1", record.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalRecords)
	assert.Equal(t, 2, resp.RecordsInPeriod)
	assert.LessOrEqual(t, resp.RecordsInPeriod, resp.TotalRecords)
	assert.Equal(t, []record.TagCount{{Tag: "new", Count: 2}}, resp.MostUsedTags)

	all, err := svc.Stats(ctx, "u1", record.Period("forever"))
	require.NoError(t, err)
	assert.Equal(t, 3, all.RecordsInPeriod)
	assert.Nil(t, all.DateRange.StartDate)
}

func TestEngine_BulkCreateScenario(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()

	resp, err := svc.BulkCreate(ctx, "u1", []record.CreateRequest{
		{Content: "broken", RecordDate: "not-a-date"},
		{Content: "valid", RecordDate: "2024-05-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"valid"}, contents(resp.Records))

	list, err := svc.List(ctx, "u1", record.PageRequest{Page: 1, Limit: 20}, record.SortDateDesc)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Pagination.TotalRecords)
}

func TestEngine_UpdateReplacesTags(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	rec := mustCreate(t, svc, "u1", "x", "2024-05-01", "a", "b")

	newDate := "2024-06-01"
	_, err := svc.Update(ctx, "u1", rec.ID, record.UpdateRequest{RecordDate: &newDate, Tags: []string{}})
	require.NoError(t, err)

	got, err := svc.Find(ctx, "u1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Content)
	assert.Equal(t, "2024-06-01", record.FormatDate(got.OccurredOn))
	assert.Equal(t, []string{}, got.Tags)
}

func TestEngine_DeleteAll(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()

	n, err := svc.DeleteAll(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	mustCreate(t, svc, "u1", "a", "2024-05-01")
	mustCreate(t, svc, "u1", "b", "2024-05-02")
	keep := mustCreate(t, svc, "u2", "c", "2024-05-03")

	n, err = svc.DeleteAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.Find(ctx, "u2", keep.ID)
	assert.NoError(t, err)
}

func contents(items []record.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content
	}
	return out
}
