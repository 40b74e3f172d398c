package validation

import (
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	datePrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dateExactRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Layouts tried, in order, for input that does not already start with YYYY-MM-DD.
// Layouts without a zone are read in local time.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.UnixDate,
	time.RubyDate,
	time.ANSIC,
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Mon Jan 2 2006",
	"Mon Jan 02 2006 15:04:05",
}

// NormalizeLocalDate converts v to YYYY-MM-DD.
//
// Strings that already start with YYYY-MM-DD are cut to that prefix without
// checking the calendar. Other strings are parsed with the fallback layouts and
// reformatted in local time. time.Time values are formatted in local time and
// integers are read as Unix milliseconds. Anything else, including blank input,
// yields ("", false).
func NormalizeLocalDate(v any) (date string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			date, ok = "", false
		}
	}()

	switch t := v.(type) {
	case nil:
		return "", false
	case time.Time:
		if t.IsZero() {
			return "", false
		}
		return t.In(time.Local).Format(DateLayout), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return "", false
		}
		return t.In(time.Local).Format(DateLayout), true
	case int, int32, int64:
		ms, _ := ToNumber(t)
		return time.UnixMilli(int64(ms)).In(time.Local).Format(DateLayout), true
	}

	s := strings.TrimSpace(Stringify(v))
	if s == "" {
		return "", false
	}
	if datePrefixRegex.MatchString(s) {
		return s[:10], true
	}

	for _, layout := range fallbackLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return parsed.In(time.Local).Format(DateLayout), true
		}
	}
	return "", false
}

// CompareDateStrings compares the YYYY-MM-DD prefixes of a and b.
// It returns -1, 0 or 1; input that is not a date on either side compares as 0.
func CompareDateStrings(a, b string) int {
	sa := firstN(a, 10)
	sb := firstN(b, 10)
	if !dateExactRegex.MatchString(sa) || !dateExactRegex.MatchString(sb) {
		return 0
	}
	return strings.Compare(sa, sb)
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
