package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/report"
	"github.com/audi70r/logstat/internal/stats"
)

var clock = func() time.Time { return time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC) }

func sampleSummary() *stats.Summary {
	return stats.Aggregate(sampleCommits(), time.UTC)
}

func sampleCommits() []*gitlog.Commit {
	return []*gitlog.Commit{
		{
			Hash:    "1111111111111111111111111111111111111111",
			Author:  "Ada Lovelace <ada@example.com>",
			Date:    time.Date(2024, 3, 5, 14, 3, 12, 0, time.UTC),
			Message: "Add app entry point\nWith a body",
			Files: []gitlog.FileChange{
				{Lines: &gitlog.LineCounts{Added: 1200, Deleted: 2}, Path: gitlog.PathDescriptor{After: "src/app.ts"}},
			},
		},
		{
			Hash:    "2222222222222222222222222222222222222222",
			Author:  "Grace Hopper <grace@example.com>",
			Date:    time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
			Message: "Add logo",
			Files: []gitlog.FileChange{
				{Path: gitlog.PathDescriptor{After: "logo.png"}},
			},
		},
		{
			Hash:    "3333333",
			Author:  "Ada Lovelace <ada@example.com>",
			Date:    time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC),
			Message: "Merge branch 'x'",
			Parents: []string{"1111111", "2222222"},
		},
	}
}

func newRenderer(t *testing.T, format string) (*report.Renderer, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	r, err := report.New(&buf, format, report.WithNoColor(true), report.WithClock(clock))
	require.NoError(t, err)
	return r, &buf
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]report.Format{"": report.FormatTable, "table": report.FormatTable, "json": report.FormatJSON, "yaml": report.FormatYAML} {
		got, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := report.ParseFormat("csv")
	require.ErrorIs(t, err, report.ErrUnknownFormat)

	_, err = report.New(&bytes.Buffer{}, "csv")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRenderer_FilesTable(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "table")
	summary := sampleSummary()
	require.NoError(t, r.Files(summary.TopFiles("changes", false, 1), len(summary.Files)))

	out := buf.String()
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "src/app.ts")
	assert.Contains(t, out, "+1,200")
	assert.Contains(t, out, "1 of 2 files")
	assert.NotContains(t, out, "logo.png")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderer_AuthorsTable(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "table")
	require.NoError(t, r.Authors(sampleSummary().Leaderboard("commits", false)))

	out := buf.String()
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "grace@example.com")
	assert.Contains(t, out, "+1198")
	assert.Contains(t, out, "2024-03-05 .. 2024-03-08")
	assert.Contains(t, out, "2 authors")
	assert.Less(t, strings.Index(out, "Ada Lovelace"), strings.Index(out, "Grace Hopper"))
}

func TestRenderer_CommitsTable(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "table")
	require.NoError(t, r.Commits(sampleCommits()))

	out := buf.String()
	assert.Contains(t, out, "1111111")
	assert.NotContains(t, out, "11111111")
	assert.Contains(t, out, "Add app entry point")
	assert.NotContains(t, out, "With a body")
	assert.Contains(t, out, "[merge] Merge branch 'x'")
	assert.Contains(t, out, "3 commits")
}

func TestRenderer_RangeTable(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "table")
	overview := report.NewOverview("repo", "abc1234", sampleSummary(), 2)
	require.NoError(t, r.Range(overview))

	out := buf.String()
	assert.Contains(t, out, "Summary of repo")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, "2024-03-05 14:03")
	assert.Contains(t, out, "1 week ago")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "+1,200 -2")
	assert.Contains(t, out, "Skipped")
}

func TestRenderer_RangeEmpty(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "table")
	require.NoError(t, r.Range(report.NewOverview("stdin", "", stats.Aggregate(nil, time.UTC), 0)))

	assert.Contains(t, buf.String(), "no commits")
	assert.NotContains(t, buf.String(), "Skipped")
}

func TestRenderer_JSON(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "json")
	require.NoError(t, r.Commits(sampleCommits()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "1111111111111111111111111111111111111111", decoded[0]["hash"])

	buf.Reset()
	require.NoError(t, r.Range(report.NewOverview("repo", "", sampleSummary(), 0)))
	var overview map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &overview))
	assert.InDelta(t, 3, overview["commits"], 0)
	assert.NotContains(t, overview, "head")
}

func TestRenderer_YAML(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, "yaml")
	require.NoError(t, r.Authors(sampleSummary().Leaderboard("name", true)))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Ada Lovelace", decoded[0]["name"])
	assert.Equal(t, 2, decoded[0]["commits"])
}

func TestRenderer_HotspotsAndOwnership(t *testing.T) {
	t.Parallel()

	summary := stats.Aggregate(append(sampleCommits(), &gitlog.Commit{
		Author: "Grace Hopper <grace@example.com>",
		Date:   time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC),
		Files: []gitlog.FileChange{
			{Lines: &gitlog.LineCounts{Added: 3, Deleted: 3}, Path: gitlog.PathDescriptor{After: "src/app.ts"}},
		},
	}), time.UTC)

	r, buf := newRenderer(t, "table")
	require.NoError(t, r.Hotspots(summary.Hotspots(10)))
	assert.Contains(t, buf.String(), "src/app.ts")
	assert.Contains(t, buf.String(), "1 hotspots")

	buf.Reset()
	require.NoError(t, r.Ownership(summary.Ownership("changes", false)))
	assert.Contains(t, buf.String(), "src")
	assert.Contains(t, buf.String(), "(root files)")
	assert.Contains(t, buf.String(), "50.0%")
}

func TestSkipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	report.Skipped(&buf, nil)
	assert.Empty(t, buf.String())

	report.Skipped(&buf, []error{errors.New("malformed commit at line 9")})
	assert.Contains(t, buf.String(), "Skipped 1 malformed commit(s)")
	assert.Contains(t, buf.String(), "line 9")
}
