package gdelt

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// compactLayout is the GDELT YYYYMMDDHHMMSS datetime format.
const compactLayout = "20060102150405"

var timespanPattern = regexp.MustCompile(`^\d+(min|h|d|w|m)$`)

// Params is a set of query parameters. Nil values and nil pointers are
// treated as absent and never reach the query string.
type Params map[string]any

// EncodeQuery builds a URL query string from params, skipping absent values.
// Keys are emitted in sorted order.
func EncodeQuery(params Params) string {
	values := url.Values{}
	for key, v := range params {
		s, ok := scalarString(v)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values.Encode()
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case int:
		return strconv.Itoa(x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}

// ValidTimespan reports whether s is a GDELT relative window such as
// "15min", "2h", "3d", "1w" or "2m".
func ValidTimespan(s string) bool {
	return timespanPattern.MatchString(s)
}

// ParseCompact converts a GDELT compact timestamp (YYYYMMDD[HH[MM[SS]]]) to a
// local time. Missing time fields default to zero. Values that do not name a
// real calendar date and time are rejected rather than normalized.
func ParseCompact(s string) (time.Time, error) {
	switch len(s) {
	case 8, 10, 12, 14:
	default:
		return time.Time{}, fmt.Errorf("invalid compact timestamp %q: want YYYYMMDDHHMMSS", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("invalid compact timestamp %q: non-digit character", s)
		}
	}

	field := func(from, to int) int {
		if len(s) < to {
			return 0
		}
		n, _ := strconv.Atoi(s[from:to])
		return n
	}
	year, month, day := field(0, 4), field(4, 6), field(6, 8)
	hour, minute, second := field(8, 10), field(10, 12), field(12, 14)

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, fmt.Errorf("invalid compact timestamp %q: not a real local date/time", s)
	}
	return t, nil
}

// FormatCompact renders t as a 14-digit compact timestamp in t's own location.
func FormatCompact(t time.Time) string {
	return t.Format(compactLayout)
}
