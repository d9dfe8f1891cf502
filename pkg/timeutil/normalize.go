// Package timeutil canonicalizes the timestamp encodings that show up in
// recorded data: RFC3339 strings, epoch milliseconds, and locale-formatted
// strings with AM/PM markers. Every consumer derives calendar days from the
// canonical instant through DayKey, never by inline date comparison.
package timeutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp reports an input that matches no supported encoding.
var ErrMalformedTimestamp = errors.New("timeutil: malformed timestamp")

// LayoutDay is the canonical calendar-day key layout.
const LayoutDay = "2006-01-02"

// Layouts without an explicit offset are interpreted in the device's local
// zone; day bucketing is local-day by contract.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// cnLocalePattern matches the zh-CN locale rendering the mini-program wrote
// for a while, e.g. "2025/8/23上午11:06:54".
var cnLocalePattern = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})\s*(上午|下午)(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// Normalize parses raw into a canonical instant. Two encodings of the same
// wall-clock moment normalize to the same instant, so DayKey agrees across
// encodings regardless of which screen produced the record.
func Normalize(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrMalformedTimestamp
	}

	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, ErrMalformedTimestamp
		}
		// Ten digits or fewer is epoch seconds, anything longer is
		// milliseconds. This misreads millisecond values from the first
		// months of 1970 (10 digits) and second values past the year 2286
		// (11 digits); recorded data carries neither.
		if len(s) <= 10 {
			return time.Unix(ms, 0), nil
		}
		return time.UnixMilli(ms), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, ok := parseCNLocale(s); ok {
		return t, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrMalformedTimestamp
}

// DayKey returns the YYYY-MM-DD key of the instant's local calendar day.
func DayKey(t time.Time) string {
	return t.Local().Format(LayoutDay)
}

// ValidDayKey reports whether s is a well-formed day key.
func ValidDayKey(s string) bool {
	_, err := time.ParseInLocation(LayoutDay, s, time.Local)
	return err == nil
}

// SameDay reports whether two instants fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func parseCNLocale(s string) (time.Time, bool) {
	m := cnLocalePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[5])
	min, _ := strconv.Atoi(m[6])
	sec := 0
	if m[7] != "" {
		sec, _ = strconv.Atoi(m[7])
	}
	if hour > 12 || month > 12 || day > 31 {
		return time.Time{}, false
	}
	switch m[4] {
	case "下午":
		if hour < 12 {
			hour += 12
		}
	case "上午":
		if hour == 12 {
			hour = 0
		}
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local), true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
