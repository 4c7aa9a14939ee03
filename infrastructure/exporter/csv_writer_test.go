package exporter

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"YT_genre_collector/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExporterWritesHeaderAndRows(t *testing.T) {
	out := NewCSVExporter(t.TempDir(), nopLogger{})

	path, err := out.Open("sports")
	require.NoError(t, err)

	first := domain.VideoRecord{
		ID:                "v1",
		URL:               "https://www.youtube.com/watch?v=v1",
		Title:             "First",
		ViewCount:         100,
		CaptionsAvailable: true,
		CaptionText:       "some captions",
		PublishedAt:       time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}
	second := domain.VideoRecord{
		ID:  "v2",
		URL: "https://www.youtube.com/watch?v=v2",
	}
	require.NoError(t, out.Write(first))
	require.NoError(t, out.Write(second))
	require.NoError(t, out.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.CSVHeader(), rows[0])
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", rows[1][0])
	assert.Equal(t, "some captions", rows[1][12])
	assert.Equal(t, "", rows[2][12])
}

func TestExporterFileNameContainsSanitizedGenre(t *testing.T) {
	out := NewCSVExporter(t.TempDir(), nopLogger{})

	path, err := out.Open("rock & roll / metal!")
	require.NoError(t, err)
	defer out.Close()

	assert.Contains(t, path, "youtube_rock  roll  metal_")
	assert.NotContains(t, path, "&")
	assert.NotContains(t, path, "!")
}

func TestExporterWriteBeforeOpenFails(t *testing.T) {
	out := NewCSVExporter(t.TempDir(), nopLogger{})
	err := out.Write(domain.VideoRecord{ID: "v1"})
	require.Error(t, err)
}

func TestExporterDoubleOpenFails(t *testing.T) {
	out := NewCSVExporter(t.TempDir(), nopLogger{})
	_, err := out.Open("sports")
	require.NoError(t, err)
	defer out.Close()

	_, err = out.Open("music")
	require.Error(t, err)
}

func TestSanitizeGenre(t *testing.T) {
	assert.Equal(t, "sports", sanitizeGenre("sports"))
	assert.Equal(t, "lo-fi_beats", sanitizeGenre("lo-fi_beats"))
	assert.Equal(t, "abc 123", sanitizeGenre("  abc 123?! "))
	assert.Equal(t, "", sanitizeGenre("???"))
}
