package stats

import (
	"time"
)

// DateRange represents the time span covered by a set of commits
type DateRange struct {
	Since time.Time `json:"since" yaml:"since"`
	Until time.Time `json:"until" yaml:"until"`
}

// IsZero reports whether the range is the degenerate range of an empty log
func (d DateRange) IsZero() bool {
	return d.Since.IsZero() && d.Until.IsZero()
}

// Duration returns Until - Since
func (d DateRange) Duration() time.Duration {
	return d.Until.Sub(d.Since)
}

// Summary holds all statistics computed from a set of commits
type Summary struct {
	TotalCommits int       `json:"total_commits" yaml:"total_commits"`
	TotalAuthors int       `json:"total_authors" yaml:"total_authors"`
	DateRange    DateRange `json:"date_range"    yaml:"date_range"`

	// File statistics keyed by the path after the change
	Files map[string]*FileStats `json:"files" yaml:"files"`

	// Author statistics keyed by the raw author string
	Authors map[string]*AuthorStats `json:"authors" yaml:"authors"`

	// Time-based data
	DailyActivity map[string]int `json:"daily_activity" yaml:"daily_activity"` // "2024-01-15" -> count
	HourlyMatrix  [7][24]int     `json:"-"              yaml:"-"`              // weekday x hour

	// Totals
	TotalAdditions int `json:"total_additions" yaml:"total_additions"`
	TotalDeletions int `json:"total_deletions" yaml:"total_deletions"`
	BinaryChanges  int `json:"binary_changes"  yaml:"binary_changes"`
	Renames        int `json:"renames"         yaml:"renames"`
	MergeCommits   int `json:"merge_commits"   yaml:"merge_commits"`
}

// NewSummary creates an empty Summary
func NewSummary() *Summary {
	return &Summary{
		Files:         make(map[string]*FileStats),
		Authors:       make(map[string]*AuthorStats),
		DailyActivity: make(map[string]int),
	}
}

// FileStats holds statistics for a single file
type FileStats struct {
	Path         string         `json:"path"          yaml:"path"`
	Commits      int            `json:"commits"       yaml:"commits"` // commits touching this file
	LinesAdded   int            `json:"lines_added"   yaml:"lines_added"`
	LinesDeleted int            `json:"lines_deleted" yaml:"lines_deleted"`
	Binary       int            `json:"binary"        yaml:"binary"` // binary changes among Commits
	Authors      map[string]int `json:"authors"       yaml:"authors"` // raw author -> commits
}

// NewFileStats creates a new FileStats
func NewFileStats(path string) *FileStats {
	return &FileStats{
		Path:    path,
		Authors: make(map[string]int),
	}
}

// TotalChanges returns added + deleted lines
func (f *FileStats) TotalChanges() int {
	return f.LinesAdded + f.LinesDeleted
}

// AuthorStats holds statistics for a single author
type AuthorStats struct {
	Author       string         `json:"author"        yaml:"author"`
	Name         string         `json:"name"          yaml:"name"`
	Email        string         `json:"email"         yaml:"email"`
	Commits      int            `json:"commits"       yaml:"commits"`
	Additions    int            `json:"additions"     yaml:"additions"`
	Deletions    int            `json:"deletions"     yaml:"deletions"`
	FilesTouched map[string]int `json:"files_touched" yaml:"files_touched"` // file -> touch count
	FirstCommit  time.Time      `json:"first_commit"  yaml:"first_commit"`
	LastCommit   time.Time      `json:"last_commit"   yaml:"last_commit"`
}

// NewAuthorStats creates a new AuthorStats
func NewAuthorStats(author, name, email string) *AuthorStats {
	return &AuthorStats{
		Author:       author,
		Name:         name,
		Email:        email,
		FilesTouched: make(map[string]int),
	}
}

// Net returns additions - deletions
func (a *AuthorStats) Net() int {
	return a.Additions - a.Deletions
}

// TimelineData holds time-series commit data
type TimelineData struct {
	Period     string // "day"
	Labels     []string
	Values     []int
	RollingAvg []float64
}

// HeatmapData holds work hours heatmap data
type HeatmapData struct {
	Matrix   [7][24]int // weekday x hour
	MaxValue int
	Timezone *time.Location
}
