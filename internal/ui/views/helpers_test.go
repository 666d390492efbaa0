package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/audi70r/logstat/internal/stats"
)

func TestWeeklyTotals(t *testing.T) {
	t.Parallel()

	// 2024-03-03 is a Sunday, so it closes ISO week 9
	labels := []string{"2024-03-03", "2024-03-04", "2024-03-05", "2024-03-10", "2024-03-11"}
	values := []int{2, 1, 1, 3, 4}

	assert.Equal(t, []int{2, 5, 4}, weeklyTotals(labels, values))
	assert.Empty(t, weeklyTotals(nil, nil))
}

func TestTrend(t *testing.T) {
	t.Parallel()

	assert.Contains(t, trend([]float64{1, 2, 3}, 2), "Insufficient data")
	assert.Contains(t, trend([]float64{1, 1, 2, 2}, 2), "increasing")
	assert.Contains(t, trend([]float64{2, 2, 1, 1}, 2), "decreasing")
	assert.Contains(t, trend([]float64{2, 2, 2, 2.1}, 2), "stable")
}

func TestMergePlan(t *testing.T) {
	t.Parallel()

	p := newMergePlan()
	p.Mark("A <a@x>")
	p.Mark("a <a@home>")
	p.Mark("A <a@x>")
	assert.Equal(t, map[string]string{"a <a@home>": "A <a@x>"}, p.Aliases())

	primary, ok := p.Target("A <a@x>")
	assert.True(t, ok)
	assert.Equal(t, "A <a@x>", primary)

	p.Clear()
	assert.Empty(t, p.Aliases())

	p.Toggle("B <b@x>")
	assert.False(t, p.MergeSelected(nil))
	p.Toggle("B <b@x>")
	assert.False(t, p.Selected("B <b@x>"))
}

func TestMergePlan_MergeSelectedPicksMostCommits(t *testing.T) {
	t.Parallel()

	authors := []*stats.AuthorStats{
		{Author: "ann <ann@home>", Commits: 2},
		{Author: "Ann <ann@work>", Commits: 9},
		{Author: "Bob <bob@x>", Commits: 4},
	}

	p := newMergePlan()
	p.Toggle("ann <ann@home>")
	p.Toggle("Ann <ann@work>")
	assert.True(t, p.MergeSelected(authors))

	assert.Equal(t, map[string]string{"ann <ann@home>": "Ann <ann@work>"}, p.Aliases())
	assert.False(t, p.Selected("ann <ann@home>"))

	// Later marks join the merged primary
	p.Mark("Bob <bob@x>")
	assert.Equal(t, "Ann <ann@work>", p.Aliases()["Bob <bob@x>"])
}

func TestSimilarAuthors(t *testing.T) {
	t.Parallel()

	target := &stats.AuthorStats{Author: "John Smith <john@work>", Name: "John Smith", Email: "john@work"}
	authors := []*stats.AuthorStats{
		target,
		{Author: "Johnny <jj@x>", Name: "Johnny", Email: "jj@x", Commits: 1},
		{Author: "J. Smith <john@home>", Name: "J. Smith", Email: "john@home", Commits: 5},
		{Author: "Grace <grace@x>", Name: "Grace", Email: "grace@x"},
		{Author: "Jo <jo@x>", Name: "Jo", Email: "jo@x"},
	}

	similar := similarAuthors(authors, target)
	got := make([]string, 0, len(similar))
	for _, a := range similar {
		got = append(got, a.Author)
	}
	assert.Equal(t, []string{"J. Smith <john@home>", "Johnny <jj@x>"}, got)
}

func TestTruncatePathAndBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short.go", truncatePath("short.go", 20))
	assert.Equal(t, "...c/file.go", truncatePath("a/very/long/path/to/src/file.go", 12))

	assert.Equal(t, "██░░░", bar(40, 5))
	assert.Equal(t, "█████", bar(250, 5))
	assert.Equal(t, "░░░░░", bar(-3, 5))
}
