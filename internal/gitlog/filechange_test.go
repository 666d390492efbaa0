package gitlog_test

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/logstat/internal/gitlog"
)

// recordingPaths records every path string it is asked to parse
type recordingPaths struct {
	calls  []string
	result gitlog.PathDescriptor
}

func (r *recordingPaths) ParsePath(s string) gitlog.PathDescriptor {
	r.calls = append(r.calls, s)
	return r.result
}

func TestLineParser_ParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected gitlog.FileChange
	}{
		{
			name: "text file",
			line: "10\t2\tsrc/app.ts",
			expected: gitlog.FileChange{
				Lines: &gitlog.LineCounts{Added: 10, Deleted: 2},
				Path:  gitlog.PathDescriptor{After: "src/app.ts"},
			},
		},
		{
			name: "zero counts",
			line: "0\t0\tempty.txt",
			expected: gitlog.FileChange{
				Lines: &gitlog.LineCounts{},
				Path:  gitlog.PathDescriptor{After: "empty.txt"},
			},
		},
		{
			name:     "binary file",
			line:     "-\t-\tlogo.png",
			expected: gitlog.FileChange{Path: gitlog.PathDescriptor{After: "logo.png"}},
		},
		{
			name: "renamed file",
			line: "3\t1\tpkg/{a.go => b.go}",
			expected: gitlog.FileChange{
				Lines: &gitlog.LineCounts{Added: 3, Deleted: 1},
				Path:  gitlog.PathDescriptor{Before: "pkg/a.go", After: "pkg/b.go"},
			},
		},
	}

	parser := gitlog.NewLineParser(gitlog.DefaultPathParser)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parser.ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLineParser_Malformed(t *testing.T) {
	t.Parallel()

	lines := map[string]string{
		"too few fields":     "10\tsrc/app.ts",
		"too many fields":    "1\t2\ta\tb",
		"non numeric added":  "x\t2\ta.go",
		"non numeric delete": "1\ty\ta.go",
		"negative count":     "-3\t2\ta.go",
		"half binary":        "-\t4\ta.go",
		"empty path":         "1\t2\t",
		"empty line":         "",
	}

	parser := &gitlog.LineParser{}

	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.ParseLine(line)
			require.Error(t, err)

			var fcErr *gitlog.MalformedFileChangeError
			require.True(t, errors.As(err, &fcErr))
			assert.Equal(t, line, fcErr.Line)
		})
	}
}

func TestLineParser_GeneratedLines(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 42))
	parser := &gitlog.LineParser{}

	for i := range 500 {
		binary := rng.IntN(4) == 0
		added, deleted := rng.IntN(100000), rng.IntN(100000)
		path := "dir" + strconv.Itoa(i) + "/file.go"

		line := strconv.Itoa(added) + "\t" + strconv.Itoa(deleted) + "\t" + path
		if binary {
			line = "-\t-\t" + path
		}

		fc, err := parser.ParseLine(line)
		require.NoError(t, err, line)

		if binary {
			assert.True(t, fc.IsBinary())
			assert.Nil(t, fc.Lines)
			assert.Zero(t, fc.Added())
			assert.Zero(t, fc.Deleted())
			continue
		}

		require.NotNil(t, fc.Lines)
		assert.GreaterOrEqual(t, fc.Lines.Added, 0)
		assert.GreaterOrEqual(t, fc.Lines.Deleted, 0)
		assert.Equal(t, added, fc.Added())
		assert.Equal(t, deleted, fc.Deleted())
	}
}

func TestLineParser_DelegatesPath(t *testing.T) {
	t.Parallel()

	paths := []string{"src/app.ts", "a => b", "p/{A => B}/s", "with space/x y.txt"}

	for _, path := range paths {
		rec := &recordingPaths{result: gitlog.ParsePathString(path)}
		parser := gitlog.NewLineParser(rec)

		fc, err := parser.ParseLine("12\t5\t" + path)
		require.NoError(t, err)

		assert.Equal(t, []string{path}, rec.calls)
		assert.Equal(t, 12, fc.Added())
		assert.Equal(t, 5, fc.Deleted())
		assert.Equal(t, gitlog.ParsePathString(path), fc.Path)
	}
}

func TestLineParser_PathParserNotCalledOnError(t *testing.T) {
	t.Parallel()

	rec := &recordingPaths{}
	parser := gitlog.NewLineParser(rec)

	_, err := parser.ParseLine("x\t1\ta.go")
	require.Error(t, err)
	assert.Empty(t, rec.calls)
}
