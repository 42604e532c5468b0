// Package timespan parses compact time spans such as "1d", "36h" or
// "1d2h03m10s" into a time.Duration.
package timespan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	Day  = 24 * time.Hour
	Week = 7 * Day
	Year = 365 * Day
)

var units = map[string]time.Duration{
	"":  time.Second,
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": Day,
	"w": Week,
	"y": Year,
}

// SuffixError reports a unit that is not one of s, m, h, d, w or y.
type SuffixError struct {
	Suffix string
}

func (e *SuffixError) Error() string {
	return fmt.Sprintf("invalid time suffix %q", e.Suffix)
}

// Parse reads a sequence of <number><unit> groups and returns their sum.
// A bare number means seconds and a bare unit means one of that unit, so
// "90" is 90s and "d" is 24h. An empty string parses to zero.
func Parse(s string) (time.Duration, error) {
	var total time.Duration

	rest := strings.TrimSpace(s)
	for rest != "" {
		digits := leading(rest, isDigit)
		value := int64(1)
		if digits != "" {
			v, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return 0, errors.Wrapf(err, "time span %q", s)
			}
			value = v
		}
		rest = rest[len(digits):]

		suffix := leading(rest, func(c byte) bool { return !isDigit(c) })
		rest = rest[len(suffix):]

		unit, ok := units[suffix]
		if !ok {
			return 0, &SuffixError{Suffix: suffix}
		}
		if value > math.MaxInt64/int64(unit) {
			return 0, errors.Errorf("time span %q overflows", s)
		}
		group := time.Duration(value) * unit
		if group > math.MaxInt64-total {
			return 0, errors.Errorf("time span %q overflows", s)
		}
		total += group
	}

	return total, nil
}

// Format renders d using the largest whole units, e.g. 26h -> "1d2h".
func Format(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	var b strings.Builder
	for _, u := range []struct {
		suffix string
		unit   time.Duration
	}{
		{"y", Year}, {"w", Week}, {"d", Day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second},
	} {
		if n := d / u.unit; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.suffix)
			d -= n * u.unit
		}
	}
	if b.Len() == 0 {
		return d.String()
	}
	return b.String()
}

func leading(s string, keep func(byte) bool) string {
	i := 0
	for i < len(s) && keep(s[i]) {
		i++
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
