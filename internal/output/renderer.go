package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/squid-search/internal/model"
	"github.com/atikulmunna/squid-search/internal/pattern"
)

// Renderer writes AccessEntry values to an output stream.
type Renderer interface {
	Render(entry model.AccessEntry) error
}

// TextRenderer prints one URL per line. On a colour terminal the part of the
// URL that matched a pattern is highlighted; anywhere else output is plain.
type TextRenderer struct {
	w         io.Writer
	patterns  []pattern.Pattern
	highlight lipgloss.Style
}

// NewTextRenderer returns a Renderer writing URLs to w. The colour profile
// is detected from w, so pipes and files receive undecorated text.
func NewTextRenderer(w io.Writer, patterns []pattern.Pattern) *TextRenderer {
	r := lipgloss.NewRenderer(w)
	return &TextRenderer{
		w:         w,
		patterns:  patterns,
		highlight: r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true), // yellow bold
	}
}

func (r *TextRenderer) Render(entry model.AccessEntry) error {
	_, err := fmt.Fprintln(r.w, r.decorate(entry.URL))
	return err
}

// decorate highlights the first pattern hit inside url.
func (r *TextRenderer) decorate(url string) string {
	for _, p := range r.patterns {
		if p.Text == "" {
			continue
		}
		if i := p.Index(url); i >= 0 {
			end := i + len(p.Text)
			return url[:i] + r.highlight.Render(url[i:end]) + url[end:]
		}
	}
	return url
}

// RenderAll renders entries in order, stopping at the first write error.
func RenderAll(r Renderer, entries []model.AccessEntry) error {
	for _, e := range entries {
		if err := r.Render(e); err != nil {
			return err
		}
	}
	return nil
}
