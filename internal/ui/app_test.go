package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/logstat/internal/config"
	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/scan"
	"github.com/audi70r/logstat/internal/stats"
)

func teamResult() *scan.Result {
	commits := []*gitlog.Commit{
		{Hash: "c1", Author: "Ada Lovelace <ada@work.example>", Date: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			Files: []gitlog.FileChange{{Lines: &gitlog.LineCounts{Added: 120}, Path: gitlog.PathDescriptor{After: "src/app.go"}}}},
		{Hash: "c2", Author: "ada <ada@home.example>", Date: time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC),
			Files: []gitlog.FileChange{{Lines: &gitlog.LineCounts{Added: 1}, Path: gitlog.PathDescriptor{After: "src/app.go"}}}},
	}
	return &scan.Result{
		Source:  "team.log",
		Commits: commits,
		Report:  &gitlog.Report{Commits: len(commits)},
		Summary: stats.Aggregate(commits, time.UTC),
	}
}

func TestMainView_EmptySummary(t *testing.T) {
	t.Parallel()

	m := NewMainView(tview.NewApplication(), config.Default(), nil, nil)
	require.Equal(t, []string{
		"Overview", "Leaderboard", "Timeline", "Work Hours",
		"Top Files", "Hotspots", "Ownership", "Authors",
	}, m.names)

	m.SetData(&scan.Result{Source: "empty.log", Summary: stats.Aggregate(nil, time.UTC)})
	assert.Equal(t, "logstat - empty.log (no commits) - 0 commits by 0 authors", m.Header())
}

func TestMainView_SetData(t *testing.T) {
	t.Parallel()

	m := NewMainView(tview.NewApplication(), config.Default(), nil, nil)
	m.SetData(teamResult())

	assert.Equal(t, "logstat - team.log (2024-03-04 to 2024-03-09) - 2 commits by 2 authors", m.Header())
}

func TestMainView_StatusBarFollowsView(t *testing.T) {
	t.Parallel()

	m := NewMainView(tview.NewApplication(), config.Default(), nil, nil)

	m.switchView("Top Files")
	assert.Contains(t, m.statusBar.GetText(true), "Sort")

	m.switchView("Authors")
	assert.Contains(t, m.statusBar.GetText(true), "Merge")

	m.switchView("Timeline")
	assert.NotContains(t, m.statusBar.GetText(true), "Sort")
}

func TestMainView_RescanKey(t *testing.T) {
	t.Parallel()

	rescans := 0
	m := NewMainView(tview.NewApplication(), config.Default(), func() { rescans++ }, nil)

	assert.Nil(t, m.handleInput(tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone)))
	assert.Equal(t, 1, rescans)

	// Unhandled keys pass through
	event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Same(t, event, m.handleInput(event))
}

func TestApp_MergeAuthors(t *testing.T) {
	t.Parallel()

	a := NewApp(config.Default(), scan.Source{File: "team.log"}, scan.Options{})
	name, _ := a.pages.GetFrontPage()
	assert.Equal(t, "progress", name)

	// Nothing to merge into before a scan finished
	a.onMergeAuthors(map[string]string{"ada@home.example": "ada@work.example"})
	assert.Empty(t, a.opts.Aliases)

	a.result = teamResult()
	a.mainView.SetData(a.result)
	a.onMergeAuthors(map[string]string{"ada <ada@home.example>": "Ada Lovelace <ada@work.example>"})

	assert.Equal(t, 1, a.result.Summary.TotalAuthors)
	assert.Equal(t, "Ada Lovelace <ada@work.example>", a.opts.Aliases["ada <ada@home.example>"])
	assert.Equal(t, "Authors", a.mainView.currentView)
	assert.Contains(t, a.mainView.Header(), "2 commits by 1 authors")
}
