package gitlog

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout matches git's default date format ("--date=default")
const DefaultDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

const (
	authorLabel = "Author:"
	dateLabel   = "Date:"

	// git indents every message line by four spaces
	messageIndent = "    "

	headerLines = 4
)

// BlockParser turns one commit block into a Commit
type BlockParser interface {
	Parse(b Block) (*Commit, error)
}

// CommitParser reads the header, message and numstat lines of a block.
// Files parses numstat lines; nil means a LineParser with DefaultPathParser.
// An empty DateLayout means DefaultDateLayout.
type CommitParser struct {
	Files      FileChangeParser
	DateLayout string
}

// NewCommitParser creates a commit parser
func NewCommitParser(files FileChangeParser, dateLayout string) *CommitParser {
	return &CommitParser{Files: files, DateLayout: dateLayout}
}

// Parse parses a merge-line-free block
func (p *CommitParser) Parse(b Block) (*Commit, error) {
	fail := func(reason string, err error) (*Commit, error) {
		return nil, &MalformedCommitError{Line: b.Line, Block: b.Raw(), Reason: reason, Err: err}
	}

	lines := b.Lines
	if len(lines) < headerLines {
		return fail(fmt.Sprintf("expected at least %d header lines, got %d", headerLines, len(lines)), nil)
	}

	hash := strings.TrimSpace(lines[0])
	if hash == "" {
		return fail("missing commit hash", nil)
	}

	author, ok := cutLabel(lines[1], authorLabel)
	if !ok {
		return fail("missing "+authorLabel+" line", nil)
	}

	rawDate, ok := cutLabel(lines[2], dateLabel)
	if !ok {
		return fail("missing "+dateLabel+" line", nil)
	}
	date, err := time.Parse(p.dateLayout(), rawDate)
	if err != nil {
		return fail("invalid date", err)
	}

	if strings.TrimSpace(lines[3]) != "" {
		return fail("expected blank line after header", nil)
	}

	messageLines, fileLines := splitBody(lines[headerLines:])

	files := make([]FileChange, 0, len(fileLines))
	parser := p.fileParser()
	for _, line := range fileLines {
		fc, err := parser.ParseLine(line)
		if err != nil {
			return fail("invalid file change", err)
		}
		files = append(files, fc)
	}

	return &Commit{
		Hash:    hash,
		Author:  author,
		Date:    date,
		Message: joinMessage(messageLines),
		Files:   files,
		Parents: b.Parents,
	}, nil
}

func (p *CommitParser) dateLayout() string {
	if p.DateLayout == "" {
		return DefaultDateLayout
	}
	return p.DateLayout
}

func (p *CommitParser) fileParser() FileChangeParser {
	if p.Files == nil {
		return &LineParser{}
	}
	return p.Files
}

func cutLabel(line, label string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), label)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// splitBody splits at the first empty line. Blank message lines carry the
// four-space indent, so only the numstat separator is truly empty.
func splitBody(lines []string) (message, files []string) {
	for i, line := range lines {
		if line == "" {
			message, files = lines[:i], lines[i+1:]
			for len(files) > 0 && files[len(files)-1] == "" {
				files = files[:len(files)-1]
			}
			return message, files
		}
	}
	return lines, nil
}

func joinMessage(lines []string) string {
	msg := strings.TrimSpace(strings.Join(lines, ""))
	return strings.ReplaceAll(msg, messageIndent, "\n")
}
