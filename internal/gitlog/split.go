package gitlog

import (
	"bufio"
	"io"
	"strings"
)

const (
	commitMarker = "commit "
	mergeLabel   = "Merge:"
	maxLineSize  = 1 << 20
)

// Block holds the lines of one commit, with the boundary marker removed
// and any "Merge:" line taken out.
type Block struct {
	Line    int      // 1-based input line where the block starts
	Lines   []string // original content and order
	Parents []string // hashes from the "Merge:" line
}

// Raw rejoins the block lines for diagnostics
func (b Block) Raw() string {
	return strings.Join(b.Lines, "\n")
}

func (b *Block) blank() bool {
	if len(b.Parents) > 0 {
		return false
	}
	for _, line := range b.Lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// Splitter reads git log output and yields one Block per commit.
// It follows the bufio.Scanner protocol: call Scan until it returns false,
// then check Err.
type Splitter struct {
	scanner *bufio.Scanner
	lineNum int
	current *Block
	block   Block
}

// NewSplitter creates a splitter over r
func NewSplitter(r io.Reader) *Splitter {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Splitter{scanner: scanner}
}

// Scan advances to the next non-blank block
func (s *Splitter) Scan() bool {
	for s.scanner.Scan() {
		s.lineNum++
		line := strings.TrimSuffix(s.scanner.Text(), "\r")

		if rest, ok := strings.CutPrefix(line, commitMarker); ok {
			prev := s.current
			s.current = &Block{Line: s.lineNum, Lines: []string{rest}}
			if prev != nil && !prev.blank() {
				s.block = *prev
				return true
			}
			continue
		}

		if s.current == nil {
			// Text before the first marker
			s.current = &Block{Line: s.lineNum}
		}

		if parents, ok := strings.CutPrefix(line, mergeLabel); ok {
			s.current.Parents = strings.Fields(parents)
			continue
		}

		s.current.Lines = append(s.current.Lines, line)
	}

	if s.scanner.Err() != nil {
		return false
	}

	last := s.current
	s.current = nil
	if last == nil || last.blank() {
		return false
	}
	s.block = *last
	return true
}

// Block returns the block found by the last successful Scan
func (s *Splitter) Block() Block {
	return s.block
}

// Err returns the first read error, if any
func (s *Splitter) Err() error {
	return s.scanner.Err()
}

// SplitBlocks splits a whole log text into commit blocks
func SplitBlocks(text string) []Block {
	var blocks []Block
	s := NewSplitter(strings.NewReader(text))
	for s.Scan() {
		blocks = append(blocks, s.Block())
	}
	return blocks
}
