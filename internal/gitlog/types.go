package gitlog

import (
	"strings"
	"time"
)

// Commit represents a single parsed git commit
type Commit struct {
	Hash    string       `json:"hash"    yaml:"hash"`
	Author  string       `json:"author"  yaml:"author"` // raw "Name <email>"
	Date    time.Time    `json:"date"    yaml:"date"`
	Message string       `json:"message" yaml:"message"`
	Files   []FileChange `json:"files"   yaml:"files"`
	// Parents holds the hashes of a "Merge:" line, if the commit had one
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// Subject returns the first line of the commit message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// Body returns the commit message without its subject line
func (c *Commit) Body() string {
	_, body, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(body)
}

// IsMerge reports whether the log recorded two or more parents
func (c *Commit) IsMerge() bool {
	return len(c.Parents) >= 2
}

// AuthorName returns the name part of the raw author string
func (c *Commit) AuthorName() string {
	name, _ := splitAuthor(c.Author)
	return name
}

// AuthorEmail returns the email part of the raw author string, without brackets
func (c *Commit) AuthorEmail() string {
	_, email := splitAuthor(c.Author)
	return email
}

func splitAuthor(raw string) (name, email string) {
	open := strings.LastIndex(raw, "<")
	if open < 0 || !strings.HasSuffix(raw, ">") {
		return strings.TrimSpace(raw), ""
	}
	return strings.TrimSpace(raw[:open]), raw[open+1 : len(raw)-1]
}

// LineCounts holds the numstat counters of a text file
type LineCounts struct {
	Added   int `json:"added"   yaml:"added"`
	Deleted int `json:"deleted" yaml:"deleted"`
}

// FileChange represents one numstat line of a commit.
// Lines is nil for binary files.
type FileChange struct {
	Lines *LineCounts    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Path  PathDescriptor `json:"path"            yaml:"path"`
}

// IsBinary reports whether git recorded "-" for both counters
func (fc FileChange) IsBinary() bool {
	return fc.Lines == nil
}

// Added returns the number of added lines, 0 for binary files
func (fc FileChange) Added() int {
	if fc.Lines == nil {
		return 0
	}
	return fc.Lines.Added
}

// Deleted returns the number of deleted lines, 0 for binary files
func (fc FileChange) Deleted() int {
	if fc.Lines == nil {
		return 0
	}
	return fc.Lines.Deleted
}

// PathDescriptor identifies a file across a rename within one commit
type PathDescriptor struct {
	After  string `json:"after"            yaml:"after"`
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
}

// Renamed reports whether the commit moved the file
func (p PathDescriptor) Renamed() bool {
	return p.Before != ""
}

func (p PathDescriptor) String() string {
	if p.Renamed() {
		return p.Before + renameArrow + p.After
	}
	return p.After
}
