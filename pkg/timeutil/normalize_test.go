package timeutil

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestNormalizeAgreesAcrossEncodings(t *testing.T) {
	want := time.Date(2025, time.August, 23, 11, 6, 54, 0, time.Local)

	encodings := []string{
		want.Format(time.RFC3339),
		"2025-08-23 11:06:54",
		"2025/8/23上午11:06:54",
		"8/23/2025 11:06:54 AM",
	}

	for _, raw := range encodings {
		got, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Normalize(%q) = %v, want %v", raw, got, want)
		}
		if DayKey(got) != "2025-08-23" {
			t.Fatalf("DayKey(Normalize(%q)) = %q", raw, DayKey(got))
		}
	}
}

func TestNormalizeEpochMillis(t *testing.T) {
	want := time.Date(2025, time.August, 23, 11, 6, 54, 0, time.Local)
	ms := want.UnixMilli()

	got, err := Normalize(time.UnixMilli(ms).Format(time.RFC3339))
	if err != nil {
		t.Fatalf("normalize reference: %v", err)
	}
	fromMillis, err := Normalize(itoa(ms))
	if err != nil {
		t.Fatalf("normalize millis: %v", err)
	}
	if DayKey(got) != DayKey(fromMillis) {
		t.Fatalf("day key mismatch: %q vs %q", DayKey(got), DayKey(fromMillis))
	}
	if !fromMillis.Equal(want) {
		t.Fatalf("Normalize(millis) = %v, want %v", fromMillis, want)
	}
}

func TestNormalizeEpochSeconds(t *testing.T) {
	want := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.Local)
	got, err := Normalize(itoa(want.Unix()))
	if err != nil {
		t.Fatalf("normalize seconds: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Normalize(seconds) = %v, want %v", got, want)
	}
}

func TestNormalizeElevenDigitMillis(t *testing.T) {
	// 11-digit epoch values are milliseconds (an instant before 2001), not
	// seconds.
	want := time.Date(1973, time.March, 3, 9, 46, 40, 0, time.UTC)
	got, err := Normalize(itoa(want.UnixMilli()))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Normalize(11-digit) = %v, want %v", got, want)
	}
}

func TestNormalizeAfternoonMarker(t *testing.T) {
	got, err := Normalize("2025/8/23下午1:06:54")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Hour() != 13 {
		t.Fatalf("expected 13h, got %d", got.Hour())
	}

	noon, err := Normalize("2025/8/23下午12:00")
	if err != nil {
		t.Fatalf("normalize noon: %v", err)
	}
	if noon.Hour() != 12 {
		t.Fatalf("expected noon to stay 12h, got %d", noon.Hour())
	}

	midnight, err := Normalize("2025/8/23上午12:00")
	if err != nil {
		t.Fatalf("normalize midnight: %v", err)
	}
	if midnight.Hour() != 0 {
		t.Fatalf("expected midnight 0h, got %d", midnight.Hour())
	}
}

func TestNormalizeMalformed(t *testing.T) {
	for _, raw := range []string{"", "yesterday-ish", "2025-99-99", "13/45/2025 9:00 AM"} {
		if _, err := Normalize(raw); !errors.Is(err, ErrMalformedTimestamp) {
			t.Fatalf("Normalize(%q): expected ErrMalformedTimestamp, got %v", raw, err)
		}
	}
}

func TestParseWindow(t *testing.T) {
	d, err := ParseWindow("1h")
	if err != nil {
		t.Fatalf("parse 1h: %v", err)
	}
	if d != time.Hour {
		t.Fatalf("expected 1h, got %v", d)
	}

	d, err = ParseWindow("1w2d")
	if err != nil {
		t.Fatalf("parse 1w2d: %v", err)
	}
	if d != 9*24*time.Hour {
		t.Fatalf("expected 216h, got %v", d)
	}

	if _, err := ParseWindow("0s"); err == nil {
		t.Fatal("expected error for zero window")
	}
	if _, err := ParseWindow("soon"); err == nil {
		t.Fatal("expected error for junk window")
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(26 * time.Hour); got != "1d2h" {
		t.Fatalf("FormatWindow(26h) = %q", got)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
