package datetime

import (
	"testing"
	"time"
)

func TestParseAcceptsCommonFormats(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2026-09-14T10:00:00Z"},
		{"iso without zone", "2026-09-14T10:00:00"},
		{"date and time", "2026-09-14 10:00"},
		{"date only", "2026-09-14"},
		{"european date", "14.09.2026"},
		{"us date with time", "09/14/2026 10:00 AM"},
		{"long form", "September 14, 2026"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("expected %q to parse, got error: %v", tc.input, err)
			}
			if parsed.Year() != 2026 || parsed.Month() != time.September || parsed.Day() != 14 {
				t.Errorf("expected 2026-09-14, got %v", parsed)
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "sometime soon", "14th of never"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected error for input %q", input)
		}
	}
}

func TestFormatForLanguage(t *testing.T) {
	moment := time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC)

	testCases := []struct {
		lang     string
		expected string
	}{
		{"en", "Monday, September 14, 2026 at 10:30 AM"},
		{"fr", "14/09/2026 à 10:30"},
		{"de", "14.09.2026 um 10:30 Uhr"},
		{"es", "Monday, September 14, 2026 at 10:30 AM"},
	}

	for _, tc := range testCases {
		if got := FormatForLanguage(moment, tc.lang); got != tc.expected {
			t.Errorf("lang %s: expected %q, got %q", tc.lang, tc.expected, got)
		}
	}
}
