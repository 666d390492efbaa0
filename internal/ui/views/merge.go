package views

import (
	"sort"
	"strings"

	"github.com/audi70r/logstat/internal/stats"
)

// mergePlan tracks pending identity merges. Keys are raw author strings;
// a primary maps to itself, an alias maps to its primary.
type mergePlan struct {
	merges   map[string]string
	selected map[string]bool
	current  string // primary that Mark adds aliases to
}

func newMergePlan() *mergePlan {
	return &mergePlan{
		merges:   make(map[string]string),
		selected: make(map[string]bool),
	}
}

// Toggle flips the batch selection of author
func (p *mergePlan) Toggle(author string) {
	if p.selected[author] {
		delete(p.selected, author)
		return
	}
	p.selected[author] = true
}

// Mark makes author the primary when none is pending, otherwise an alias of it
func (p *mergePlan) Mark(author string) {
	if p.current == "" || p.merges[p.current] != p.current {
		p.merges[author] = author
		p.current = author
		return
	}
	if author != p.current {
		p.merges[author] = p.current
	}
}

// MergeSelected folds the selected authors into the one with most commits.
// It needs at least two selected authors.
func (p *mergePlan) MergeSelected(authors []*stats.AuthorStats) bool {
	if len(p.selected) < 2 {
		return false
	}

	var primary *stats.AuthorStats
	for _, a := range authors {
		if !p.selected[a.Author] {
			continue
		}
		if primary == nil || a.Commits > primary.Commits {
			primary = a
		}
	}
	if primary == nil {
		return false
	}

	for author := range p.selected {
		p.merges[author] = primary.Author
	}
	p.current = primary.Author
	p.selected = make(map[string]bool)
	return true
}

// Clear drops selections and pending merges
func (p *mergePlan) Clear() {
	p.merges = make(map[string]string)
	p.selected = make(map[string]bool)
	p.current = ""
}

// Aliases returns alias -> primary for every pending merge
func (p *mergePlan) Aliases() map[string]string {
	out := make(map[string]string)
	for alias, primary := range p.merges {
		if alias != primary {
			out[alias] = primary
		}
	}
	return out
}

// Target returns the primary author merges into, if it takes part in a merge
func (p *mergePlan) Target(author string) (string, bool) {
	primary, ok := p.merges[author]
	return primary, ok
}

// Selected reports whether author is in the batch selection
func (p *mergePlan) Selected(author string) bool {
	return p.selected[author]
}

// similarAuthors finds likely duplicate identities of target: names sharing
// their first three letters, or emails with the same local part
func similarAuthors(authors []*stats.AuthorStats, target *stats.AuthorStats) []*stats.AuthorStats {
	name := strings.ToLower(target.Name)
	local := emailLocal(target.Email)

	var similar []*stats.AuthorStats
	for _, a := range authors {
		if a.Author == target.Author {
			continue
		}
		if samePrefix(strings.ToLower(a.Name), name) || (local != "" && emailLocal(a.Email) == local) {
			similar = append(similar, a)
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Commits > similar[j].Commits
	})
	if len(similar) > 5 {
		similar = similar[:5]
	}
	return similar
}

func emailLocal(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(email), "@")
	return local
}

// samePrefix matches "john" with "johnny"; short names must be equal
func samePrefix(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if len(a) >= 3 && len(b) >= 3 {
		return a[:3] == b[:3]
	}
	return a == b
}
