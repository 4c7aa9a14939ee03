package usecases

import (
	"context"
	"fmt"
	"testing"

	"YT_genre_collector/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

type fakeYoutube struct {
	categories    []domain.Category
	categoriesErr error
	searchIDs     []string
	searchErr     error
	detailsCalls  [][]string
	details       func(ids []string) ([]domain.FetchResult, error)
}

func (f *fakeYoutube) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeYoutube) SearchTopVideos(ctx context.Context, query, categoryID string, maxResults int64) ([]string, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if int64(len(f.searchIDs)) > maxResults {
		return f.searchIDs[:maxResults], nil
	}
	return f.searchIDs, nil
}

func (f *fakeYoutube) GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.FetchResult, error) {
	f.detailsCalls = append(f.detailsCalls, videoIDs)
	return f.details(videoIDs)
}

type fakeCaptions struct {
	texts map[string]string
	calls []string
}

func (f *fakeCaptions) FetchCaptionText(ctx context.Context, videoID string) (string, error) {
	f.calls = append(f.calls, videoID)
	text, ok := f.texts[videoID]
	if !ok {
		return "", fmt.Errorf("no captions for %s", videoID)
	}
	return text, nil
}

type fakeExporter struct {
	openedGenre string
	rows        []domain.VideoRecord
	closed      bool
}

func (f *fakeExporter) Open(genre string) (string, error) {
	f.openedGenre = genre
	return "output/test.csv", nil
}

func (f *fakeExporter) Write(record domain.VideoRecord) error {
	f.rows = append(f.rows, record)
	return nil
}

func (f *fakeExporter) Close() error {
	f.closed = true
	return nil
}

func sportsCategories() []domain.Category {
	return []domain.Category{
		{ID: "10", Title: "Music"},
		{ID: "17", Title: "Sports"},
		{ID: "20", Title: "Gaming"},
	}
}

func recordsFor(ids []string) func([]string) ([]domain.FetchResult, error) {
	return func(batch []string) ([]domain.FetchResult, error) {
		results := make([]domain.FetchResult, 0, len(batch))
		for _, id := range batch {
			results = append(results, domain.Fetched(domain.VideoRecord{
				ID:  id,
				URL: "https://www.youtube.com/watch?v=" + id,
			}))
		}
		return results, nil
	}
}

func TestResolveCategoryCaseInsensitive(t *testing.T) {
	yt := &fakeYoutube{categories: sportsCategories()}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, &fakeExporter{}, nopLogger{}, 500)

	for _, genre := range []string{"sports", "Sports", "SPORTS", "  sports  "} {
		category, err := uc.ResolveCategory(context.Background(), genre)
		require.NoError(t, err, "genre %q", genre)
		assert.Equal(t, "17", category.ID)
	}
}

func TestResolveCategoryUnknownGenre(t *testing.T) {
	yt := &fakeYoutube{categories: sportsCategories()}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, &fakeExporter{}, nopLogger{}, 500)

	_, err := uc.ResolveCategory(context.Background(), "underwater basket weaving")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown genre")
}

func TestResolveCategoryEmptyGenre(t *testing.T) {
	yt := &fakeYoutube{categories: sportsCategories()}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, &fakeExporter{}, nopLogger{}, 500)

	_, err := uc.ResolveCategory(context.Background(), "   ")
	require.Error(t, err)
}

func TestCollectWritesRowsInRankOrder(t *testing.T) {
	yt := &fakeYoutube{
		categories: sportsCategories(),
		searchIDs:  []string{"v1", "v2", "v3"},
	}
	yt.details = func(batch []string) ([]domain.FetchResult, error) {
		results := make([]domain.FetchResult, 0, len(batch))
		for _, id := range batch {
			record := domain.VideoRecord{ID: id, URL: "https://www.youtube.com/watch?v=" + id}
			if id == "v2" {
				record.CaptionsAvailable = true
			}
			results = append(results, domain.Fetched(record))
		}
		return results, nil
	}
	caps := &fakeCaptions{texts: map[string]string{"v2": "caption text"}}
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, caps, out, nopLogger{}, 500)

	summary, err := uc.Collect(context.Background(), "sports", nil)
	require.NoError(t, err)

	require.Len(t, out.rows, 3)
	assert.Equal(t, []string{"v2"}, caps.calls)
	assert.Equal(t, "v1", out.rows[0].ID)
	assert.Equal(t, "v2", out.rows[1].ID)
	assert.Equal(t, "v3", out.rows[2].ID)
	assert.True(t, out.rows[1].CaptionsAvailable)
	assert.Equal(t, "caption text", out.rows[1].CaptionText)
	assert.True(t, out.closed)

	assert.Equal(t, 3, summary.VideosFound)
	assert.Equal(t, 3, summary.RowsWritten)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.CaptionsFound)
	assert.Equal(t, "output/test.csv", summary.OutputPath)
	assert.Equal(t, "17", summary.CategoryID)
}

func TestCollectDowngradesFailedCaptions(t *testing.T) {
	yt := &fakeYoutube{
		categories: sportsCategories(),
		searchIDs:  []string{"v1"},
	}
	yt.details = func(batch []string) ([]domain.FetchResult, error) {
		return []domain.FetchResult{
			domain.Fetched(domain.VideoRecord{ID: "v1", CaptionsAvailable: true}),
		}, nil
	}
	// No caption text registered, so the fetch fails.
	caps := &fakeCaptions{texts: map[string]string{}}
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, caps, out, nopLogger{}, 500)

	summary, err := uc.Collect(context.Background(), "sports", nil)
	require.NoError(t, err)

	require.Len(t, out.rows, 1)
	assert.False(t, out.rows[0].CaptionsAvailable)
	assert.Empty(t, out.rows[0].CaptionText)
	assert.Equal(t, 1, summary.RowsWritten)
	assert.Equal(t, 0, summary.CaptionsFound)
}

func TestCollectSkipsMissingVideos(t *testing.T) {
	yt := &fakeYoutube{
		categories: sportsCategories(),
		searchIDs:  []string{"v1", "gone", "v3"},
	}
	yt.details = func(batch []string) ([]domain.FetchResult, error) {
		results := make([]domain.FetchResult, 0, len(batch))
		for _, id := range batch {
			if id == "gone" {
				results = append(results, domain.Skip(id, "video not returned by details lookup"))
				continue
			}
			results = append(results, domain.Fetched(domain.VideoRecord{ID: id}))
		}
		return results, nil
	}
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, out, nopLogger{}, 500)

	summary, err := uc.Collect(context.Background(), "sports", nil)
	require.NoError(t, err)

	// Skipped videos leave no row behind, blank or otherwise.
	require.Len(t, out.rows, 2)
	assert.Equal(t, "v1", out.rows[0].ID)
	assert.Equal(t, "v3", out.rows[1].ID)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.RowsWritten)
}

func TestCollectBatchesDetailsLookups(t *testing.T) {
	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}
	yt := &fakeYoutube{categories: sportsCategories(), searchIDs: ids}
	yt.details = recordsFor(ids)
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, out, nopLogger{}, 500)

	summary, err := uc.Collect(context.Background(), "sports", nil)
	require.NoError(t, err)

	require.Len(t, yt.detailsCalls, 3)
	assert.Len(t, yt.detailsCalls[0], 50)
	assert.Len(t, yt.detailsCalls[1], 50)
	assert.Len(t, yt.detailsCalls[2], 20)
	assert.Equal(t, 120, summary.RowsWritten)
}

func TestCollectContinuesAfterFailedBatch(t *testing.T) {
	ids := make([]string, 60)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}
	yt := &fakeYoutube{categories: sportsCategories(), searchIDs: ids}
	call := 0
	yt.details = func(batch []string) ([]domain.FetchResult, error) {
		call++
		if call == 1 {
			return nil, fmt.Errorf("transient backend error")
		}
		return recordsFor(batch)(batch)
	}
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, out, nopLogger{}, 500)

	summary, err := uc.Collect(context.Background(), "sports", nil)
	require.NoError(t, err)

	assert.Equal(t, 50, summary.Skipped)
	assert.Equal(t, 10, summary.RowsWritten)
	require.Len(t, out.rows, 10)
}

func TestCollectFailsOnSearchError(t *testing.T) {
	yt := &fakeYoutube{
		categories: sportsCategories(),
		searchErr:  fmt.Errorf("quota exceeded"),
	}
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, out, nopLogger{}, 500)

	_, err := uc.Collect(context.Background(), "sports", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, out.openedGenre)
}

func TestCollectFailsOnUnknownGenreBeforeSearch(t *testing.T) {
	yt := &fakeYoutube{categories: sportsCategories(), searchIDs: []string{"v1"}}
	yt.details = recordsFor([]string{"v1"})
	out := &fakeExporter{}
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, out, nopLogger{}, 500)

	_, err := uc.Collect(context.Background(), "no such genre", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown genre")
	assert.Empty(t, out.openedGenre)
}

func TestCollectReportsProgress(t *testing.T) {
	yt := &fakeYoutube{categories: sportsCategories(), searchIDs: []string{"v1", "v2"}}
	yt.details = recordsFor([]string{"v1", "v2"})
	uc := NewCollectorUseCase(yt, &fakeCaptions{}, &fakeExporter{}, nopLogger{}, 500)

	var stages []Stage
	var last Progress
	_, err := uc.Collect(context.Background(), "sports", func(p Progress) {
		stages = append(stages, p.Stage)
		last = p
	})
	require.NoError(t, err)

	assert.Equal(t, StageResolve, stages[0])
	assert.Equal(t, StageDone, stages[len(stages)-1])
	assert.Equal(t, 2, last.Written)
	assert.Equal(t, 2, last.Found)
}
