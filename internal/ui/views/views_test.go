package views_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/logstat/internal/git"
	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/stats"
	"github.com/audi70r/logstat/internal/ui/views"
)

func change(path string, added, deleted int) gitlog.FileChange {
	return gitlog.FileChange{
		Lines: &gitlog.LineCounts{Added: added, Deleted: deleted},
		Path:  gitlog.PathDescriptor{After: path},
	}
}

// 2024-03-04 is a Monday
func at(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

func teamSummary() *stats.Summary {
	return stats.Aggregate([]*gitlog.Commit{
		{Hash: "c1", Author: "Ada Lovelace <ada@work.example>", Date: at(4, 10), Files: []gitlog.FileChange{
			change("src/app.go", 120, 0),
			{Path: gitlog.PathDescriptor{After: "logo.png"}},
		}},
		{Hash: "c2", Author: "Grace Hopper <grace@example.com>", Date: at(7, 11), Files: []gitlog.FileChange{
			change("docs/parser.md", 40, 0),
			change("src/app.go", 3, 2),
		}},
		{Hash: "c3", Author: "ada <ada@home.example>", Date: at(9, 22), Files: []gitlog.FileChange{
			change("src/app.go", 1, 0),
		}},
	}, time.UTC)
}

func TestFilesView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewFilesView(2)
	v.Refresh(teamSummary())

	require.Equal(t, 2, v.Rows())
	assert.Equal(t, "src/app.go", v.CellText(0, 1))
	assert.Equal(t, "126", v.CellText(0, 2))
	assert.Equal(t, "docs/parser.md", v.CellText(1, 1))

	// Commits, then reversed
	v.CycleSortColumn()
	v.ReverseSortOrder()
	v.Refresh(teamSummary())
	assert.Equal(t, "1", v.CellText(0, 3))
}

func TestFilesView_CycleSkipsUnsortableColumns(t *testing.T) {
	t.Parallel()

	v := views.NewFilesView(0)
	summary := teamSummary()

	// Changes, Commits, Authors, +Lines, -Lines, then wrap past Binary and # to File
	for range 5 {
		v.CycleSortColumn()
	}
	v.Refresh(summary)

	// Path, descending
	require.Equal(t, 3, v.Rows())
	assert.Equal(t, "src/app.go", v.CellText(0, 1))
	assert.Equal(t, "docs/parser.md", v.CellText(2, 1))
}

func TestLeaderboardView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewLeaderboardView(0)
	v.Refresh(teamSummary())

	require.Equal(t, 3, v.Rows())
	assert.Equal(t, "+120", v.CellText(0, 3))
	assert.Equal(t, "2024-03-04 → 2024-03-04", v.CellText(0, 7))
}

func TestHotspotsView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewHotspotsView(0)
	v.Refresh(teamSummary())

	// Only src/app.go has more than one author
	require.Equal(t, 1, v.Rows())
	assert.Equal(t, "src/app.go", v.CellText(0, 1))
	assert.Equal(t, "3", v.CellText(0, 4))
}

func TestOwnershipView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewOwnershipView()
	v.Refresh(teamSummary())

	dirs := v.Directories()
	require.Len(t, dirs, 3)
	assert.Equal(t, "src", dirs[0].Path)
	assert.Contains(t, v.Detail(), "Bus Factor")

	v.CycleSortColumn() // commits
	v.CycleSortColumn() // authors
	v.CycleSortColumn() // path
	v.ReverseSortOrder()
	v.Refresh(teamSummary())
	assert.Equal(t, ".", v.Directories()[0].Path)
}

func TestTimelineView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewTimelineView(7, 52)
	v.Refresh(teamSummary())

	text := v.Text()
	assert.Contains(t, text, "2024-03-04 to 2024-03-09")
	assert.Contains(t, text, "7-Day Rolling Average")
	assert.Contains(t, text, "Insufficient data")

	v.Refresh(stats.NewSummary())
	assert.Contains(t, v.Text(), "No commit data available")
}

func TestHeatmapView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewHeatmapView(time.UTC)
	v.Refresh(teamSummary())

	text := v.Text()
	assert.Contains(t, text, "Timezone: [cyan]UTC[-]")
	assert.Contains(t, text, "Monday[-] at [green]10:00")
	// Two of three commits fall in Mon-Fri 9-18
	assert.Contains(t, text, "[cyan]2[-] commits (66.7%)")

	v.Refresh(stats.NewSummary())
	assert.Contains(t, v.Text(), "No commits")
}

func TestOverviewView_Refresh(t *testing.T) {
	t.Parallel()

	v := views.NewOverviewView()
	v.SetSkipped(2)
	v.Refresh(teamSummary())

	text := v.Text()
	assert.Contains(t, text, "Total Commits:      [cyan]3[-]")
	assert.Contains(t, text, "[red]2[-] malformed")
	assert.Contains(t, text, "2024-03-04[-] to [cyan]2024-03-09")
}

func TestProgressView_Update(t *testing.T) {
	t.Parallel()

	p := views.NewProgressView()
	p.Update(git.ScanProgress{CommitsParsed: 5, TotalEstimate: 10, CurrentHash: "abc1234"})
	assert.Equal(t, "5 / 10 commits parsed", p.Count())
	assert.Equal(t, "Processing abc1234...", p.Status())

	p.Update(git.ScanProgress{CommitsParsed: 9, Skipped: 1, Done: true})
	assert.Equal(t, "9 commits parsed, 1 skipped", p.Count())
	assert.Equal(t, "Aggregating statistics...", p.Status())

	p.SetError(errors.New("boom"))
	assert.Contains(t, p.Status(), "boom")
}

func TestAuthorsView_MarkAndApply(t *testing.T) {
	t.Parallel()

	var applied map[string]string
	v := views.NewAuthorsView(func(aliases map[string]string) { applied = aliases })
	v.Refresh(teamSummary())

	// One commit each, so ordered by raw author: Ada Lovelace, Grace Hopper, ada
	v.SetCurrent(0)
	v.Merge()
	v.SetCurrent(2)
	v.Merge()
	assert.Contains(t, v.Info(), "APPLY 1 merge(s)")

	v.Apply()
	assert.Equal(t, map[string]string{
		"ada <ada@home.example>": "Ada Lovelace <ada@work.example>",
	}, applied)
}

func TestAuthorsView_MergeSelected(t *testing.T) {
	t.Parallel()

	var applied map[string]string
	v := views.NewAuthorsView(func(aliases map[string]string) { applied = aliases })
	v.Refresh(teamSummary())

	v.SetCurrent(1)
	v.Select()
	v.SetCurrent(2)
	v.Select()
	assert.Contains(t, v.Info(), "MERGE 2 selected")

	v.Merge()
	v.Apply()
	require.Len(t, applied, 1)

	v.Clear()
	v.Apply()
	assert.Len(t, applied, 1)
}

func TestParseSetup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	logFile := filepath.Join(t.TempDir(), "git.log")
	require.NoError(t, os.WriteFile(logFile, nil, 0o600))

	setup, err := views.ParseSetup(" "+dir+" ", "2024-03-01", "2024-03-31", "ada, , grace")
	require.NoError(t, err)
	assert.Equal(t, dir, setup.Source.Repo)
	assert.Equal(t, []string{"ada", "grace"}, setup.Authors)

	setup, err = views.ParseSetup(logFile, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, logFile, setup.Source.File)
	assert.Empty(t, setup.Authors)

	_, err = views.ParseSetup("", "", "", "")
	assert.ErrorIs(t, err, views.ErrNoSource)

	_, err = views.ParseSetup(t.TempDir(), "", "", "")
	assert.ErrorIs(t, err, views.ErrNotGitRepo)

	_, err = views.ParseSetup(logFile, "03/01/2024", "", "")
	assert.ErrorIs(t, err, views.ErrBadDate)

	_, err = views.ParseSetup(logFile, "2024-03-31", "2024-03-01", "")
	assert.ErrorIs(t, err, views.ErrDateOrder)
}
