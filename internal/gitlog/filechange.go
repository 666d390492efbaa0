package gitlog

import (
	"strconv"
	"strings"
)

const binaryMarker = "-"

// FileChangeParser turns one numstat line into a FileChange
type FileChangeParser interface {
	ParseLine(line string) (FileChange, error)
}

// LineParser parses "<added>\t<deleted>\t<path>" lines.
// Paths decodes the path column; nil means DefaultPathParser.
type LineParser struct {
	Paths PathParser
}

// NewLineParser creates a line parser using the given path parser
func NewLineParser(paths PathParser) *LineParser {
	return &LineParser{Paths: paths}
}

// ParseLine parses a single numstat line
func (p *LineParser) ParseLine(line string) (FileChange, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return FileChange{}, &MalformedFileChangeError{
			Line:   line,
			Reason: "expected 3 tab-separated fields, got " + strconv.Itoa(len(parts)),
		}
	}

	if parts[2] == "" {
		return FileChange{}, &MalformedFileChangeError{Line: line, Reason: "empty path"}
	}

	var fc FileChange
	if parts[0] != binaryMarker || parts[1] != binaryMarker {
		added, err := parseCount(line, "added", parts[0])
		if err != nil {
			return FileChange{}, err
		}
		deleted, err := parseCount(line, "deleted", parts[1])
		if err != nil {
			return FileChange{}, err
		}
		fc.Lines = &LineCounts{Added: added, Deleted: deleted}
	}

	paths := p.Paths
	if paths == nil {
		paths = DefaultPathParser
	}
	fc.Path = paths.ParsePath(parts[2])

	return fc, nil
}

func parseCount(line, field, value string) (int, error) {
	n, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return 0, &MalformedFileChangeError{
			Line:   line,
			Reason: "invalid " + field + " count " + strconv.Quote(value),
			Err:    err,
		}
	}
	return int(n), nil
}
