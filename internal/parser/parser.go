package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/atikulmunna/squid-search/internal/model"
)

// ErrMalformedLine is matched (via errors.Is) by every error ParseLine returns.
var ErrMalformedLine = errors.New("malformed access log line")

// fieldNames lists the leading fields of the Squid native log format, in order.
// Example line:
//
//	1634718299.586     84 127.0.0.1 TCP_MISS/200 785 GET https://example.com/ - HIER_DIRECT/93.184.216.34 -
var fieldNames = [...]string{"time", "elapsed", "remotehost", "code/status", "bytes", "method", "url"}

const (
	timeField   = 0
	methodField = 5
	urlField    = 6
)

// asciiSpace is the field separator set. Non-ASCII spaces such as U+00A0
// can appear inside URLs and must not split a field.
const asciiSpace = " \t\n\v\f\r"

func isASCIISpace(r rune) bool {
	return r < 0x80 && strings.ContainsRune(asciiSpace, r)
}

// MissingFieldError reports a line that ends before all required fields were read.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %s is missing", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMalformedLine }

// TimestampError reports a first field that is not an epoch seconds value.
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

func (e *TimestampError) Is(target error) bool { return target == ErrMalformedLine }

// ParseLine converts one Squid native access log line into an AccessEntry.
// Leading NUL bytes are ignored; they show up after a crash or truncation.
func ParseLine(line string) (model.AccessEntry, error) {
	s := strings.TrimLeft(strings.Trim(line, asciiSpace), "\x00")
	parts := strings.FieldsFunc(s, isASCIISpace)

	if len(parts) < len(fieldNames) {
		return model.AccessEntry{}, &MissingFieldError{Field: fieldNames[len(parts)]}
	}

	ts, err := ParseEpoch(parts[timeField])
	if err != nil {
		return model.AccessEntry{}, &TimestampError{Value: parts[timeField], Err: err}
	}

	return model.AccessEntry{
		Time:   ts,
		Method: parts[methodField],
		URL:    parts[urlField],
	}, nil
}

// ParseEpoch parses Unix epoch seconds with an optional decimal fraction
// ("1634718299.586") into a local time. Digits past nanosecond precision
// are truncated.
func ParseEpoch(s string) (time.Time, error) {
	secStr, fracStr, _ := strings.Cut(s, ".")

	sec, err := strconv.ParseInt(secStr, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "seconds")
	}

	var nsec int64
	if fracStr != "" {
		for _, c := range fracStr {
			if c < '0' || c > '9' {
				return time.Time{}, errors.Errorf("fraction %q is not numeric", fracStr)
			}
		}
		if len(fracStr) > 9 {
			fracStr = fracStr[:9]
		}
		n, _ := strconv.ParseInt(fracStr, 10, 64)
		for i := len(fracStr); i < 9; i++ {
			n *= 10
		}
		nsec = n
		if strings.HasPrefix(secStr, "-") {
			nsec = -nsec
		}
	}

	return time.Unix(sec, nsec), nil
}
