package gitlog

import "strings"

const renameArrow = " => "

// PathParser decodes the path column of a numstat line
type PathParser interface {
	ParsePath(s string) PathDescriptor
}

// PathParserFunc adapts a function to PathParser
type PathParserFunc func(s string) PathDescriptor

// ParsePath calls f(s)
func (f PathParserFunc) ParsePath(s string) PathDescriptor {
	return f(s)
}

// DefaultPathParser understands the three encodings git uses for numstat paths
var DefaultPathParser PathParser = PathParserFunc(ParsePathString)

// ParsePathString decodes a plain path, a full rename ("old => new") or a
// partial rename ("prefix{old => new}suffix").
//
// Paths that contain " => " or braces as literal content are not supported.
func ParsePathString(s string) PathDescriptor {
	if !strings.Contains(s, renameArrow) {
		return PathDescriptor{After: s}
	}

	if prefix, rest, ok := strings.Cut(s, "{"); ok {
		if change, suffix, ok := strings.Cut(rest, "}"); ok {
			before, after, _ := strings.Cut(change, renameArrow)
			return PathDescriptor{
				Before: joinRenamed(prefix, before, suffix),
				After:  joinRenamed(prefix, after, suffix),
			}
		}
	}

	before, after, _ := strings.Cut(s, renameArrow)
	return PathDescriptor{Before: before, After: after}
}

// joinRenamed rebuilds one side of a partial rename. git prints a moved-in
// or moved-out directory as "a/{ => b}/c", so an empty middle must not leave
// "a//c" behind.
func joinRenamed(prefix, middle, suffix string) string {
	if middle == "" && strings.HasPrefix(suffix, "/") && (prefix == "" || strings.HasSuffix(prefix, "/")) {
		return prefix + suffix[1:]
	}
	return prefix + middle + suffix
}
