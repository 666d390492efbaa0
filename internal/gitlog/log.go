// Package gitlog parses the text output of "git log --numstat" into commit
// records with per-file line statistics and rename detection.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorPolicy selects what happens when a commit block cannot be parsed
type ErrorPolicy int

const (
	// FailFast aborts the whole run at the first malformed block
	FailFast ErrorPolicy = iota
	// SkipAndContinue drops the malformed block and keeps reading
	SkipAndContinue
)

// ErrInvalidPolicy is returned by ParsePolicy for unknown names
var ErrInvalidPolicy = errors.New("invalid error policy")

// ParsePolicy maps "fail-fast" and "skip" to an ErrorPolicy
func ParsePolicy(name string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "skip", "skip-and-continue":
		return SkipAndContinue, nil
	default:
		return FailFast, fmt.Errorf("%w: %q (must be fail-fast or skip)", ErrInvalidPolicy, name)
	}
}

func (p ErrorPolicy) String() string {
	if p == SkipAndContinue {
		return "skip"
	}
	return "fail-fast"
}

// Report summarizes a parsing run
type Report struct {
	Commits int     // commits handed to the callback
	Skipped []error // malformed blocks dropped under SkipAndContinue
}

// LogParser chains the splitter and a block parser under an error policy
type LogParser struct {
	Commits BlockParser
	Policy  ErrorPolicy
	Logger  *slog.Logger
	// OnSkip, when set, sees each block dropped under SkipAndContinue
	OnSkip func(err error)
}

// Options configures New
type Options struct {
	DateLayout string
	Policy     ErrorPolicy
	Logger     *slog.Logger
	// Paths overrides the path-string parser; nil means DefaultPathParser
	Paths  PathParser
	OnSkip func(err error)
}

// New wires the default parser chain
func New(opts Options) *LogParser {
	paths := opts.Paths
	if paths == nil {
		paths = DefaultPathParser
	}
	return &LogParser{
		Commits: NewCommitParser(NewLineParser(paths), opts.DateLayout),
		Policy:  opts.Policy,
		Logger:  opts.Logger,
		OnSkip:  opts.OnSkip,
	}
}

// Each parses r and streams every commit to fn. An error returned by fn
// stops the run and is returned as is.
func (p *LogParser) Each(ctx context.Context, r io.Reader, fn func(*Commit) error) (*Report, error) {
	report := &Report{}
	splitter := NewSplitter(r)

	for splitter.Scan() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		block := splitter.Block()
		commit, err := p.Commits.Parse(block)
		if err != nil {
			if p.Policy == FailFast {
				return report, err
			}
			p.logger().Warn("skipping malformed commit", "line", block.Line, "error", err)
			report.Skipped = append(report.Skipped, err)
			if p.OnSkip != nil {
				p.OnSkip(err)
			}
			continue
		}

		if err := fn(commit); err != nil {
			return report, err
		}
		report.Commits++
	}

	if err := splitter.Err(); err != nil {
		return report, fmt.Errorf("reading git log: %w", err)
	}

	return report, nil
}

// ParseAll parses r into a slice of commits
func (p *LogParser) ParseAll(ctx context.Context, r io.Reader) ([]*Commit, *Report, error) {
	var commits []*Commit
	report, err := p.Each(ctx, r, func(c *Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, report, err
	}
	return commits, report, nil
}

// ParseString is ParseAll over an in-memory log
func (p *LogParser) ParseString(text string) ([]*Commit, *Report, error) {
	return p.ParseAll(context.Background(), strings.NewReader(text))
}

func (p *LogParser) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
