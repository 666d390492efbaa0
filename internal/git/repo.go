// Package git locates repositories with go-git and streams their
// numstat log from the git binary.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Common errors returned by Repo operations.
var (
	ErrNotGitRepo = errors.New("path is not a git repository")
	ErrNoHead     = errors.New("repository has no HEAD reference")
)

const shortHashLen = 7

// Repo is an opened git repository
type Repo struct {
	Path string // worktree root
	repo *gogit.Repository
}

// Open finds the repository containing path, walking up to the .git directory
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, path)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repo{Path: root, repo: repo}, nil
}

// IsGitRepo checks if the path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := Open(path)
	return err == nil
}

// Head returns the abbreviated hash HEAD points at
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrNoHead
		}
		return "", err
	}
	return ref.Hash().String()[:shortHashLen], nil
}

// EstimateCommitCount returns an estimate of commits in the date range.
// An empty repository has zero commits.
func (r *Repo) EstimateCommitCount(opts LogOptions) (int, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return -1, err
	}

	logOpts := &gogit.LogOptions{From: ref.Hash()}
	if !opts.Since.IsZero() {
		logOpts.Since = &opts.Since
	}
	if !opts.Until.IsZero() {
		logOpts.Until = &opts.Until
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return -1, err
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return -1, err
	}

	return count, nil
}

// LogArgs returns the git arguments producing the default numstat log.
// Formatting flags are pinned so user configuration cannot change the shape.
func LogArgs(opts LogOptions) []string {
	args := []string{
		"log",
		"--numstat",
		"--pretty=medium",
		"--date=default",
		"--no-color",
		"--no-decorate",
		"-M",
	}

	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if !opts.Until.IsZero() {
		args = append(args, "--until="+opts.Until.Format(time.RFC3339))
	}

	return args
}

// Log starts git log and returns its output. Close waits for the process;
// closing before EOF stops it.
func (r *Repo) Log(ctx context.Context, opts LogOptions) (io.ReadCloser, error) {
	ctx, cancel := context.WithCancel(ctx)

	cmd := exec.CommandContext(ctx, "git", LogArgs(opts)...)
	cmd.Dir = r.Path

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start git log: %w", err)
	}

	return &logReader{ReadCloser: stdout, cmd: cmd, cancel: cancel, stderr: stderr}, nil
}

type logReader struct {
	io.ReadCloser
	cmd    *exec.Cmd
	cancel context.CancelFunc
	stderr *bytes.Buffer
	eof    bool
	closed bool
}

func (l *logReader) Read(p []byte) (int, error) {
	n, err := l.ReadCloser.Read(p)
	if errors.Is(err, io.EOF) {
		l.eof = true
	}
	return n, err
}

func (l *logReader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	defer l.cancel()

	if !l.eof {
		// Abandoned early; the exit status is of no interest
		l.cancel()
		_ = l.cmd.Wait()
		return nil
	}

	if err := l.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(l.stderr.String()); msg != "" {
			return fmt.Errorf("git log failed: %w: %s", err, msg)
		}
		return fmt.Errorf("git log failed: %w", err)
	}
	return nil
}
