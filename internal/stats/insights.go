package stats

import (
	"sort"
	"strings"
)

// Hotspot is a file changed often, heavily and by several authors
type Hotspot struct {
	Path        string  `json:"path"         yaml:"path"`
	ChurnScore  float64 `json:"churn_score"  yaml:"churn_score"` // changes relative to the busiest file, 0-100
	AuthorCount int     `json:"author_count" yaml:"author_count"`
	RiskScore   float64 `json:"risk_score"   yaml:"risk_score"`
	Changes     int     `json:"changes"      yaml:"changes"`
	Commits     int     `json:"commits"      yaml:"commits"`
}

// DirStats aggregates file statistics under a top-level directory
type DirStats struct {
	Path    string                     `json:"path"    yaml:"path"`
	Changes int                        `json:"changes" yaml:"changes"`
	Commits int                        `json:"commits" yaml:"commits"` // file touches
	Authors map[string]*DirAuthorStats `json:"authors" yaml:"authors"`
}

// DirAuthorStats is one author's share of a directory
type DirAuthorStats struct {
	Author  string  `json:"author"  yaml:"author"`
	Name    string  `json:"name"    yaml:"name"`
	Commits int     `json:"commits" yaml:"commits"`
	Share   float64 `json:"share"   yaml:"share"` // percentage of the directory's touches
}

// Owners returns the directory authors by descending share
func (d *DirStats) Owners() []*DirAuthorStats {
	owners := make([]*DirAuthorStats, 0, len(d.Authors))
	for _, a := range d.Authors {
		owners = append(owners, a)
	}
	sort.Slice(owners, func(i, j int) bool {
		if owners[i].Commits != owners[j].Commits {
			return owners[i].Commits > owners[j].Commits
		}
		return owners[i].Author < owners[j].Author
	})
	return owners
}

// BusFactor counts authors owning at least 10% of the directory
func (d *DirStats) BusFactor() int {
	count := 0
	for _, a := range d.Authors {
		if a.Share >= 10 {
			count++
		}
	}
	return count
}

// Hotspots scores multi-author files by churn, touch frequency and author
// diversity. Single-author files are skipped.
func (s *Summary) Hotspots(limit int) []*Hotspot {
	var maxChanges, maxCommits int
	for _, f := range s.Files {
		maxChanges = max(maxChanges, f.TotalChanges())
		maxCommits = max(maxCommits, f.Commits)
	}
	maxChanges = max(maxChanges, 1)
	maxCommits = max(maxCommits, 1)
	totalAuthors := max(len(s.Authors), 1)

	hotspots := make([]*Hotspot, 0)
	for _, f := range s.Files {
		authorCount := len(f.Authors)
		if authorCount < 2 {
			continue
		}

		churn := float64(f.TotalChanges()) / float64(maxChanges)
		touches := float64(f.Commits) / float64(maxCommits)
		diversity := float64(authorCount) / float64(totalAuthors)

		hotspots = append(hotspots, &Hotspot{
			Path:        f.Path,
			ChurnScore:  churn * 100,
			AuthorCount: authorCount,
			RiskScore:   (churn*0.4 + touches*0.3 + diversity*0.3) * 100,
			Changes:     f.TotalChanges(),
			Commits:     f.Commits,
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].RiskScore != hotspots[j].RiskScore {
			return hotspots[i].RiskScore > hotspots[j].RiskScore
		}
		return hotspots[i].Path < hotspots[j].Path
	})

	if limit > 0 && limit < len(hotspots) {
		return hotspots[:limit]
	}
	return hotspots
}

// Ownership groups files by top-level directory ("." for root files)
// and sorts by path, commits, authors or changes (default)
func (s *Summary) Ownership(sortBy string, ascending bool) []*DirStats {
	byDir := make(map[string]*DirStats)
	for _, f := range s.Files {
		dirPath := topDir(f.Path)
		dir, ok := byDir[dirPath]
		if !ok {
			dir = &DirStats{Path: dirPath, Authors: make(map[string]*DirAuthorStats)}
			byDir[dirPath] = dir
		}

		dir.Changes += f.TotalChanges()
		for author, commits := range f.Authors {
			dir.Commits += commits

			owner, ok := dir.Authors[author]
			if !ok {
				owner = &DirAuthorStats{Author: author, Name: author}
				if a, known := s.Authors[author]; known && a.Name != "" {
					owner.Name = a.Name
				}
				dir.Authors[author] = owner
			}
			owner.Commits += commits
		}
	}

	dirs := make([]*DirStats, 0, len(byDir))
	for _, dir := range byDir {
		for _, owner := range dir.Authors {
			if dir.Commits > 0 {
				owner.Share = float64(owner.Commits) / float64(dir.Commits) * 100
			}
		}
		dirs = append(dirs, dir)
	}

	sort.Slice(dirs, func(i, j int) bool {
		var cmp int
		switch sortBy {
		case "path":
			cmp = strings.Compare(dirs[i].Path, dirs[j].Path)
		case "commits":
			cmp = dirs[i].Commits - dirs[j].Commits
		case "authors":
			cmp = len(dirs[i].Authors) - len(dirs[j].Authors)
		default:
			cmp = dirs[i].Changes - dirs[j].Changes
		}
		if cmp == 0 {
			return dirs[i].Path < dirs[j].Path
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	return dirs
}

// topDir returns the first path segment, or "." for a root-level file.
// Git paths always use '/'.
func topDir(path string) string {
	if dir, _, found := strings.Cut(path, "/"); found && dir != "" {
		return dir
	}
	return "."
}
