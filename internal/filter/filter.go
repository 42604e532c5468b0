package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/atikulmunna/squid-search/internal/model"
	"github.com/atikulmunna/squid-search/internal/parser"
	"github.com/atikulmunna/squid-search/internal/pattern"
)

// LineError wraps a parse failure with the 1-based line it occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Summary counts what a run saw at each stage.
type Summary struct {
	Parsed   int
	Retained int
	Matched  int
}

// Cutoff returns the oldest timestamp still inside window, relative to now.
func Cutoff(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}

// Recent parses every line of content and keeps the entries at or after
// cutoff, in their original order. The first malformed line aborts the scan.
func Recent(content string, cutoff time.Time) ([]model.AccessEntry, error) {
	entries, _, err := recent(content, cutoff)
	return entries, err
}

func recent(content string, cutoff time.Time) ([]model.AccessEntry, int, error) {
	var (
		entries []model.AccessEntry
		n       int
	)

	for _, line := range splitLines(content) {
		n++
		entry, err := parser.ParseLine(line)
		if err != nil {
			return nil, n, &LineError{Line: n, Err: err}
		}
		if !entry.Time.Before(cutoff) {
			entries = append(entries, entry)
		}
	}

	return entries, n, nil
}

// splitLines splits content on "\n", dropping a trailing "\r" from each line
// and the empty piece after a final newline. Lines have no length limit.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Match keeps the entries whose method equals method exactly and whose URL
// satisfies at least one pattern. With unique set, each URL is kept only
// the first time it matches.
func Match(entries []model.AccessEntry, method string, patterns []pattern.Pattern, unique bool) []model.AccessEntry {
	if len(patterns) == 0 {
		return nil
	}

	var seen map[string]struct{}
	if unique {
		seen = make(map[string]struct{})
	}

	var out []model.AccessEntry
	for _, e := range entries {
		if e.Method != method || !pattern.Any(patterns, e.URL) {
			continue
		}
		if unique {
			if _, dup := seen[e.URL]; dup {
				continue
			}
			seen[e.URL] = struct{}{}
		}
		out = append(out, e)
	}
	return out
}

// Search runs Recent followed by Match and reports the stage counts.
func Search(content string, cutoff time.Time, method string, patterns []pattern.Pattern, unique bool) ([]model.AccessEntry, Summary, error) {
	retained, parsed, err := recent(content, cutoff)
	if err != nil {
		return nil, Summary{Parsed: parsed}, err
	}

	matched := Match(retained, method, patterns, unique)
	return matched, Summary{
		Parsed:   parsed,
		Retained: len(retained),
		Matched:  len(matched),
	}, nil
}
