package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/stats"
)

func insightSummary() *stats.Summary {
	return stats.Aggregate([]*gitlog.Commit{
		{Author: "Ann <ann@x>", Date: day(4, 9), Files: []gitlog.FileChange{
			textChange("src/core.go", 100, 20),
			textChange("src/util.go", 5, 0),
			textChange("Makefile", 3, 0),
		}},
		{Author: "Bob <bob@x>", Date: day(5, 9), Files: []gitlog.FileChange{
			textChange("src/core.go", 30, 30),
			textChange("docs/guide.md", 40, 0),
		}},
		{Author: "Ann <ann@x>", Date: day(6, 9), Files: []gitlog.FileChange{
			textChange("src/core.go", 1, 1),
			textChange("docs/guide.md", 2, 2),
		}},
	}, time.UTC)
}

func TestSummary_Hotspots(t *testing.T) {
	t.Parallel()

	hotspots := insightSummary().Hotspots(0)
	require.Len(t, hotspots, 2)

	core := hotspots[0]
	assert.Equal(t, "src/core.go", core.Path)
	assert.Equal(t, 2, core.AuthorCount)
	assert.Equal(t, 182, core.Changes)
	assert.Equal(t, 3, core.Commits)
	assert.InDelta(t, 100.0, core.ChurnScore, 1e-9)
	assert.InDelta(t, 100.0, core.RiskScore, 1e-9)

	assert.Equal(t, "docs/guide.md", hotspots[1].Path)
	assert.Less(t, hotspots[1].RiskScore, core.RiskScore)

	assert.Len(t, insightSummary().Hotspots(1), 1)
}

func TestSummary_Ownership(t *testing.T) {
	t.Parallel()

	dirs := insightSummary().Ownership("changes", false)
	require.Len(t, dirs, 3)
	assert.Equal(t, []string{"src", "docs", "."}, []string{dirs[0].Path, dirs[1].Path, dirs[2].Path})

	src := dirs[0]
	assert.Equal(t, 187, src.Changes)
	assert.Equal(t, 4, src.Commits)

	owners := src.Owners()
	require.Len(t, owners, 2)
	assert.Equal(t, "Ann", owners[0].Name)
	assert.InDelta(t, 75.0, owners[0].Share, 1e-9)
	assert.InDelta(t, 25.0, owners[1].Share, 1e-9)
	assert.Equal(t, 2, src.BusFactor())

	byPath := insightSummary().Ownership("path", true)
	assert.Equal(t, ".", byPath[0].Path)
}

func TestSummary_OwnershipFollowsMergedAuthors(t *testing.T) {
	t.Parallel()

	summary := insightSummary()
	summary.MergeAuthors(map[string]string{"bob@x": "Ann <ann@x>"})

	for _, dir := range summary.Ownership("", false) {
		require.Len(t, dir.Authors, 1, dir.Path)
		assert.InDelta(t, 100.0, dir.Authors["Ann <ann@x>"].Share, 1e-9)
	}
	assert.Empty(t, summary.Hotspots(0))
}
