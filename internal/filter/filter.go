// Package filter narrows parsed commits by author, date and path before
// they are aggregated.
package filter

import (
	"errors"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/audi70r/logstat/internal/gitlog"
)

// ErrInvalidPattern indicates a glob pattern could not be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// Options selects which commits and file changes are kept.
// Zero values mean "no restriction".
type Options struct {
	// Authors keeps commits whose raw author contains any of these, case-insensitively
	Authors []string
	// Since and Until are inclusive bounds on the commit date
	Since time.Time
	Until time.Time
	// Include and Exclude are path globs; '/' separates segments, "**" crosses them
	Include []string
	Exclude []string
}

// Filter applies Options to commits
type Filter struct {
	authors []string
	since   time.Time
	until   time.Time
	include []glob.Glob
	exclude []glob.Glob
}

// New compiles the options into a Filter
func New(opts Options) (*Filter, error) {
	include, err := compileGlobs(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.Exclude)
	if err != nil {
		return nil, err
	}

	authors := make([]string, 0, len(opts.Authors))
	for _, a := range opts.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, strings.ToLower(a))
		}
	}

	return &Filter{
		authors: authors,
		since:   opts.Since,
		until:   opts.Until,
		include: include,
		exclude: exclude,
	}, nil
}

// compileGlobs compiles a slice of glob pattern strings into matchers.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		matchers = append(matchers, matcher)
	}

	return matchers, nil
}

// Apply returns the commits that pass the filter. Commits whose file list
// changes are copied; the input is never modified.
func (f *Filter) Apply(commits []*gitlog.Commit) []*gitlog.Commit {
	out := make([]*gitlog.Commit, 0, len(commits))
	for _, c := range commits {
		if kept, ok := f.Commit(c); ok {
			out = append(out, kept)
		}
	}
	return out
}

// Commit filters a single commit. It returns false when the commit is dropped.
func (f *Filter) Commit(c *gitlog.Commit) (*gitlog.Commit, bool) {
	if !f.matchAuthor(c.Author) || !f.matchDate(c.Date) {
		return nil, false
	}

	if len(f.include) == 0 && len(f.exclude) == 0 {
		return c, true
	}
	if len(c.Files) == 0 {
		// Nothing to match an include pattern against
		return c, len(f.include) == 0
	}

	files := make([]gitlog.FileChange, 0, len(c.Files))
	for _, fc := range c.Files {
		if f.matchPath(fc.Path) {
			files = append(files, fc)
		}
	}
	if len(files) == 0 {
		return nil, false
	}
	if len(files) == len(c.Files) {
		return c, true
	}

	kept := *c
	kept.Files = files
	return &kept, true
}

func (f *Filter) matchAuthor(author string) bool {
	if len(f.authors) == 0 {
		return true
	}
	author = strings.ToLower(author)
	for _, a := range f.authors {
		if strings.Contains(author, a) {
			return true
		}
	}
	return false
}

func (f *Filter) matchDate(date time.Time) bool {
	if !f.since.IsZero() && date.Before(f.since) {
		return false
	}
	if !f.until.IsZero() && date.After(f.until) {
		return false
	}
	return true
}

// matchPath checks both sides of a rename
func (f *Filter) matchPath(p gitlog.PathDescriptor) bool {
	paths := []string{p.After}
	if p.Renamed() {
		paths = append(paths, p.Before)
	}

	for _, path := range paths {
		if anyMatch(f.exclude, path) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, path := range paths {
		if anyMatch(f.include, path) {
			return true
		}
	}
	return false
}

func anyMatch(matchers []glob.Glob, path string) bool {
	for _, m := range matchers {
		if m.Match(path) {
			return true
		}
	}
	return false
}
