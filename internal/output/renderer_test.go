package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/atikulmunna/squid-search/internal/model"
	"github.com/atikulmunna/squid-search/internal/pattern"
)

func TestTextRendererPlainWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf, pattern.ParseAll([]string{"foo"}))

	entry := model.AccessEntry{
		Time:   time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC),
		Method: "GET",
		URL:    "http://example.com/foo/bar",
	}

	if err := renderer.Render(entry); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "http://example.com/foo/bar\n" {
		t.Errorf("expected plain URL line, got %q", got)
	}
}

func TestRenderAll(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf, nil)

	entries := []model.AccessEntry{
		{Method: "GET", URL: "/a"},
		{Method: "GET", URL: "/b"},
		{Method: "GET", URL: "/a"},
	}

	if err := RenderAll(renderer, entries); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "/a\n/b\n/a\n" {
		t.Errorf("expected one URL per line in order, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderAllStopsOnError(t *testing.T) {
	renderer := NewTextRenderer(failingWriter{}, nil)

	err := RenderAll(renderer, []model.AccessEntry{{URL: "/a"}, {URL: "/b"}})
	if err == nil {
		t.Error("expected write error to propagate")
	}
}

func TestTextRendererHighlightsMatch(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf, pattern.ParseAll([]string{"nomatch", "^http://", ".iso$"}))
	renderer.highlight = renderer.highlight.Transform(func(s string) string { return "[" + s + "]" })

	tests := []struct {
		url  string
		want string
	}{
		{"http://mirror/debian.iso", "[http://]mirror/debian.iso"},
		{"https://mirror/debian.iso", "https://mirror/debian[.iso]"},
		{"https://mirror/debian.deb", "https://mirror/debian.deb"},
	}

	for _, tt := range tests {
		if got := renderer.decorate(tt.url); got != tt.want {
			t.Errorf("decorate(%q): expected %q, got %q", tt.url, tt.want, got)
		}
	}
}
