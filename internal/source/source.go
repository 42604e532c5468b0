package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// DefaultPath is where Squid writes its access log on most distributions.
const DefaultPath = "/var/log/squid/access.log"

// Resolve expands a path or glob pattern into the files to read.
// Patterns without glob meta characters are returned unchanged, so a
// missing log surfaces as a read error rather than an empty match.
// Recursive patterns like /var/log/squid/**/access.log are supported via
// doublestar.
func Resolve(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPath
	}

	if !hasMeta(pattern) {
		return []string{filepath.Clean(pattern)}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand pattern %q", pattern)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files matched %q", pattern)
	}

	sort.Strings(matches)
	return matches, nil
}

// Read loads every file fully into memory and concatenates the contents in
// the given order. Each file handle is closed before the next is opened.
func Read(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", p)
		}
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[{\`)
}
