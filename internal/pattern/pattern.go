package pattern

import "strings"

// Position says where in a URL a pattern has to appear.
type Position int

const (
	Anywhere Position = iota
	Begin
	End
)

func (p Position) String() string {
	switch p {
	case Begin:
		return "begin"
	case End:
		return "end"
	default:
		return "anywhere"
	}
}

// Pattern is a plain substring, optionally anchored with a leading '^' or a
// trailing '$'. No other characters are special.
type Pattern struct {
	Text     string
	Position Position
}

// Parse builds a Pattern from its command-line form.
// "^foo" matches URLs starting with foo, "foo$" URLs ending with foo, and
// anything else is a substring match. A pattern carrying both anchors is
// treated as a prefix match on the text between them.
func Parse(s string) Pattern {
	p := Pattern{Text: s, Position: Anywhere}

	if strings.HasSuffix(p.Text, "$") {
		p.Text = p.Text[:len(p.Text)-1]
		p.Position = End
	}
	if strings.HasPrefix(s, "^") {
		p.Text = p.Text[1:]
		p.Position = Begin
	}

	return p
}

// ParseAll parses every argument in order.
func ParseAll(args []string) []Pattern {
	out := make([]Pattern, 0, len(args))
	for _, a := range args {
		out = append(out, Parse(a))
	}
	return out
}

// Match reports whether url satisfies the pattern.
func (p Pattern) Match(url string) bool {
	switch p.Position {
	case Begin:
		return strings.HasPrefix(url, p.Text)
	case End:
		return strings.HasSuffix(url, p.Text)
	default:
		return strings.Contains(url, p.Text)
	}
}

// Index returns the byte offset of the matched text inside url, or -1.
func (p Pattern) Index(url string) int {
	if !p.Match(url) {
		return -1
	}
	switch p.Position {
	case Begin:
		return 0
	case End:
		return len(url) - len(p.Text)
	default:
		return strings.Index(url, p.Text)
	}
}

// Any reports whether url satisfies at least one of patterns.
// An empty list never matches.
func Any(patterns []Pattern, url string) bool {
	for _, p := range patterns {
		if p.Match(url) {
			return true
		}
	}
	return false
}

func (p Pattern) String() string {
	switch p.Position {
	case Begin:
		return "^" + p.Text
	case End:
		return p.Text + "$"
	default:
		return p.Text
	}
}
