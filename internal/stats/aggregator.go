package stats

import (
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/audi70r/logstat/internal/gitlog"
)

const dayLayout = "2006-01-02"

// Aggregator folds commits into a Summary
type Aggregator struct {
	summary  *Summary
	timezone *time.Location
}

// NewAggregator creates a new statistics aggregator.
// tz is used for daily and hourly buckets; nil means time.Local.
func NewAggregator(tz *time.Location) *Aggregator {
	if tz == nil {
		tz = time.Local
	}
	return &Aggregator{
		summary:  NewSummary(),
		timezone: tz,
	}
}

// Aggregate folds every commit into a new Summary.
// An empty input yields empty maps and a zero DateRange.
func Aggregate(commits []*gitlog.Commit, tz *time.Location) *Summary {
	a := NewAggregator(tz)
	for _, c := range commits {
		a.ProcessCommit(c)
	}
	return a.Finalize()
}

// ProcessCommit adds a commit's data to the statistics
func (a *Aggregator) ProcessCommit(c *gitlog.Commit) {
	s := a.summary
	s.TotalCommits++

	if c.IsMerge() {
		s.MergeCommits++
	}

	// Date range
	if s.DateRange.Since.IsZero() || c.Date.Before(s.DateRange.Since) {
		s.DateRange.Since = c.Date
	}
	if s.DateRange.Until.IsZero() || c.Date.After(s.DateRange.Until) {
		s.DateRange.Until = c.Date
	}

	// Author stats
	author, ok := s.Authors[c.Author]
	if !ok {
		author = NewAuthorStats(c.Author, c.AuthorName(), c.AuthorEmail())
		s.Authors[c.Author] = author
		s.TotalAuthors++
	}

	author.Commits++
	if author.FirstCommit.IsZero() || c.Date.Before(author.FirstCommit) {
		author.FirstCommit = c.Date
	}
	if c.Date.After(author.LastCommit) {
		author.LastCommit = c.Date
	}

	// Daily activity and hourly matrix (weekday x hour)
	localTime := c.Date.In(a.timezone)
	s.DailyActivity[localTime.Format(dayLayout)]++

	// Convert Sunday=0 to Monday=0 format
	weekday := (int(localTime.Weekday()) + 6) % 7
	s.HourlyMatrix[weekday][localTime.Hour()]++

	// File changes; a path listed twice in one commit counts once
	touched := make(map[string]bool, len(c.Files))
	for _, fc := range c.Files {
		path := fc.Path.After
		added, deleted := fc.Added(), fc.Deleted()

		fileStat, ok := s.Files[path]
		if !ok {
			fileStat = NewFileStats(path)
			s.Files[path] = fileStat
		}

		if !touched[path] {
			touched[path] = true
			fileStat.Commits++
			fileStat.Authors[c.Author]++
		}
		fileStat.LinesAdded += added
		fileStat.LinesDeleted += deleted
		if fc.IsBinary() {
			fileStat.Binary++
			s.BinaryChanges++
		}
		if fc.Path.Renamed() {
			s.Renames++
		}

		author.Additions += added
		author.Deletions += deleted
		author.FilesTouched[path]++

		s.TotalAdditions += added
		s.TotalDeletions += deleted
	}
}

// Finalize returns the accumulated statistics
func (a *Aggregator) Finalize() *Summary {
	return a.summary
}

// Leaderboard returns authors sorted by the given criteria
func (s *Summary) Leaderboard(sortBy string, ascending bool) []*AuthorStats {
	authors := make([]*AuthorStats, 0, len(s.Authors))
	for _, a := range s.Authors {
		authors = append(authors, a)
	}

	sort.Slice(authors, func(i, j int) bool {
		var cmp int
		switch sortBy {
		case "name":
			cmp = strings.Compare(authors[i].Name, authors[j].Name)
		case "additions":
			cmp = authors[i].Additions - authors[j].Additions
		case "deletions":
			cmp = authors[i].Deletions - authors[j].Deletions
		case "net":
			cmp = authors[i].Net() - authors[j].Net()
		case "files":
			cmp = len(authors[i].FilesTouched) - len(authors[j].FilesTouched)
		default:
			cmp = authors[i].Commits - authors[j].Commits
		}
		if cmp == 0 {
			// Stable output regardless of direction
			return authors[i].Author < authors[j].Author
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	return authors
}

// TopFiles returns files sorted by the given criteria, at most limit when limit > 0
func (s *Summary) TopFiles(sortBy string, ascending bool, limit int) []*FileStats {
	files := make([]*FileStats, 0, len(s.Files))
	for _, f := range s.Files {
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		var cmp int
		switch sortBy {
		case "path":
			cmp = strings.Compare(files[i].Path, files[j].Path)
		case "commits":
			cmp = files[i].Commits - files[j].Commits
		case "added":
			cmp = files[i].LinesAdded - files[j].LinesAdded
		case "deleted":
			cmp = files[i].LinesDeleted - files[j].LinesDeleted
		case "authors":
			cmp = len(files[i].Authors) - len(files[j].Authors)
		default:
			cmp = files[i].TotalChanges() - files[j].TotalChanges()
		}
		if cmp == 0 {
			return files[i].Path < files[j].Path
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	if limit > 0 && limit < len(files) {
		return files[:limit]
	}
	return files
}

// Timeline returns daily commit data with rolling average
func (s *Summary) Timeline(windowDays int) *TimelineData {
	if len(s.DailyActivity) == 0 {
		return &TimelineData{}
	}
	if windowDays < 1 {
		windowDays = 1
	}

	// Get sorted dates
	dates := make([]string, 0, len(s.DailyActivity))
	for d := range s.DailyActivity {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	startDate, _ := time.Parse(dayLayout, dates[0])
	endDate, _ := time.Parse(dayLayout, dates[len(dates)-1])

	// Fill in all dates in range
	var labels []string
	var values []int
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(dayLayout)
		labels = append(labels, dateStr)
		values = append(values, s.DailyActivity[dateStr])
	}

	rollingAvg := make([]float64, len(values))
	for i := range values {
		start := max(i-windowDays+1, 0)
		sum := 0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		rollingAvg[i] = float64(sum) / float64(i-start+1)
	}

	return &TimelineData{
		Period:     "day",
		Labels:     labels,
		Values:     values,
		RollingAvg: rollingAvg,
	}
}

// Heatmap returns hourly commit distribution data
func (s *Summary) Heatmap(tz *time.Location) *HeatmapData {
	var maxValue int
	for day := range 7 {
		for hour := range 24 {
			maxValue = max(maxValue, s.HourlyMatrix[day][hour])
		}
	}

	return &HeatmapData{
		Matrix:   s.HourlyMatrix,
		MaxValue: maxValue,
		Timezone: tz,
	}
}

// MergeAuthors folds alias authors into their primary identity.
// Keys and values match either the raw author string or the email, so one
// alias email can fold several raw spellings at once. Chained aliases
// (a to b, b to c) all land on the last identity of the chain.
func (s *Summary) MergeAuthors(aliases map[string]string) {
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		primaryKey, ok := s.primaryAuthor(resolveAlias(aliases, alias))
		if !ok {
			continue
		}
		for _, aliasKey := range s.matchAuthors(alias) {
			if aliasKey != primaryKey {
				s.mergeAuthor(aliasKey, primaryKey)
			}
		}
	}
}

// resolveAlias follows alias links to the end of the chain; a cycle ends
// at the first identity seen twice
func resolveAlias(aliases map[string]string, alias string) string {
	seen := map[string]bool{alias: true}
	primary := aliases[alias]
	for {
		next, ok := aliases[primary]
		if !ok || seen[primary] {
			return primary
		}
		seen[primary] = true
		primary = next
	}
}

func (s *Summary) mergeAuthor(aliasKey, primaryKey string) {
	from, to := s.Authors[aliasKey], s.Authors[primaryKey]

	to.Commits += from.Commits
	to.Additions += from.Additions
	to.Deletions += from.Deletions
	for file, count := range from.FilesTouched {
		to.FilesTouched[file] += count
	}
	if from.FirstCommit.Before(to.FirstCommit) {
		to.FirstCommit = from.FirstCommit
	}
	if from.LastCommit.After(to.LastCommit) {
		to.LastCommit = from.LastCommit
	}

	delete(s.Authors, aliasKey)
	s.TotalAuthors--

	for _, fileStat := range s.Files {
		if count, exists := fileStat.Authors[aliasKey]; exists {
			fileStat.Authors[primaryKey] += count
			delete(fileStat.Authors, aliasKey)
		}
	}
}

// matchAuthors returns the keys of authors whose raw string or email is id
func (s *Summary) matchAuthors(id string) []string {
	var keys []string
	for key, a := range s.Authors {
		if key == id || (a.Email != "" && strings.EqualFold(a.Email, id)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// primaryAuthor picks the exact raw match, else the busiest email match
func (s *Summary) primaryAuthor(id string) (string, bool) {
	if _, ok := s.Authors[id]; ok {
		return id, true
	}
	keys := s.matchAuthors(id)
	if len(keys) == 0 {
		return "", false
	}
	best := keys[0]
	for _, key := range keys[1:] {
		if s.Authors[key].Commits > s.Authors[best].Commits {
			best = key
		}
	}
	return best, true
}
