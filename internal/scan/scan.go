// Package scan runs the full pipeline from a log source to statistics:
// open the source, parse, filter, aggregate and merge author aliases.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/audi70r/logstat/internal/config"
	"github.com/audi70r/logstat/internal/filter"
	"github.com/audi70r/logstat/internal/git"
	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/stats"
)

// StdinName selects standard input as the log file
const StdinName = "-"

// Source names where the log text comes from. File wins over Repo.
type Source struct {
	Repo  string    // repository path, git log runs there
	File  string    // saved git log output, or StdinName
	Stdin io.Reader // used when File is StdinName
}

// Label describes the source for headers and logs
func (s Source) Label() string {
	switch {
	case s.File == StdinName:
		return "stdin"
	case s.File != "":
		return s.File
	default:
		return s.Repo
	}
}

// Options configures Run
type Options struct {
	DateLayout string
	Policy     gitlog.ErrorPolicy
	Filter     filter.Options
	Timezone   *time.Location
	Aliases    map[string]string
	Logger     *slog.Logger

	// OnProgress is called after every kept commit and once when done
	OnProgress func(git.ScanProgress)
}

// OptionsFromConfig maps loaded configuration onto Options
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		DateLayout: cfg.Log.DateLayout,
		Policy:     cfg.Policy,
		Filter: filter.Options{
			Authors: cfg.Filter.Authors,
			Since:   cfg.Since,
			Until:   cfg.Until,
			Include: cfg.Filter.Include,
			Exclude: cfg.Filter.Exclude,
		},
		Timezone: cfg.Timezone,
		Aliases:  cfg.Aliases,
		Logger:   logger,
	}
}

// Result is the outcome of a scan
type Result struct {
	Source  string
	Head    string // abbreviated HEAD hash for repository sources
	Commits []*gitlog.Commit
	Report  *gitlog.Report
	Summary *stats.Summary
}

// Run reads the source and returns the aggregated statistics
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f, err := filter.New(opts.Filter)
	if err != nil {
		return nil, err
	}

	in, err := open(ctx, src, opts, logger)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: src.Label(), Head: in.head}

	progress := git.ScanProgress{TotalEstimate: in.estimate}

	parser := gitlog.New(gitlog.Options{
		DateLayout: opts.DateLayout,
		Policy:     opts.Policy,
		Logger:     logger,
		OnSkip:     func(error) { progress.Skipped++ },
	})
	report, parseErr := parser.Each(ctx, in.r, func(c *gitlog.Commit) error {
		progress.CommitsParsed++
		if kept, ok := f.Commit(c); ok {
			result.Commits = append(result.Commits, kept)
		}
		if opts.OnProgress != nil {
			progress.CurrentHash = shortHash(c.Hash)
			opts.OnProgress(progress)
		}
		return nil
	})
	closeErr := in.r.Close()

	result.Report = report
	if parseErr != nil {
		return result, parseErr
	}
	if closeErr != nil {
		return result, closeErr
	}

	if opts.OnProgress != nil {
		progress.Skipped = len(report.Skipped)
		progress.CurrentHash = ""
		progress.Done = true
		opts.OnProgress(progress)
	}

	result.Summary = stats.Aggregate(result.Commits, opts.Timezone)
	if len(opts.Aliases) > 0 {
		result.Summary.MergeAuthors(opts.Aliases)
	}

	logger.Debug("scan complete",
		"source", result.Source,
		"parsed", report.Commits,
		"kept", len(result.Commits),
		"skipped", len(report.Skipped))

	return result, nil
}

type input struct {
	r        io.ReadCloser
	head     string
	estimate int
}

func open(ctx context.Context, src Source, opts Options, logger *slog.Logger) (*input, error) {
	switch {
	case src.File == StdinName:
		stdin := src.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return &input{r: io.NopCloser(stdin)}, nil

	case src.File != "":
		file, err := os.Open(src.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return &input{r: file}, nil
	}

	repoPath := src.Repo
	if repoPath == "" {
		repoPath = "."
	}

	repo, err := git.Open(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if errors.Is(err, git.ErrNoHead) {
		// git log fails on an unborn branch
		logger.Debug("repository has no commits", "path", repo.Path)
		return &input{r: io.NopCloser(strings.NewReader(""))}, nil
	}
	if err != nil {
		return nil, err
	}

	logOpts := git.LogOptions{Since: opts.Filter.Since, Until: opts.Filter.Until}

	estimate, err := repo.EstimateCommitCount(logOpts)
	if err != nil {
		logger.Debug("commit count estimate failed", "error", err)
		estimate = 0
	}

	r, err := repo.Log(ctx, logOpts)
	if err != nil {
		return nil, err
	}

	return &input{r: r, head: head, estimate: estimate}, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
