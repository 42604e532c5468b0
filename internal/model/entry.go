package model

import "time"

// AccessEntry represents a single parsed proxy access log line.
// Values are never modified after the parser builds them.
type AccessEntry struct {
	Time   time.Time
	Method string // GET, POST, CONNECT, ...
	URL    string
}
