package gitlog

import (
	"fmt"
	"strings"
)

// MalformedCommitError reports a commit block whose header or separators
// cannot be read. Block holds the offending raw text.
type MalformedCommitError struct {
	Line   int // 1-based input line of the block start, 0 if unknown
	Block  string
	Reason string
	Err    error
}

func (e *MalformedCommitError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed commit")
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	if head, _, _ := strings.Cut(e.Block, "\n"); head != "" {
		fmt.Fprintf(&sb, " (%q)", head)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *MalformedCommitError) Unwrap() error {
	return e.Err
}

// MalformedFileChangeError reports a numstat line that is not
// "<added>\t<deleted>\t<path>".
type MalformedFileChangeError struct {
	Line   string
	Reason string
	Err    error
}

func (e *MalformedFileChangeError) Error() string {
	msg := fmt.Sprintf("malformed file change %q: %s", e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedFileChangeError) Unwrap() error {
	return e.Err
}
