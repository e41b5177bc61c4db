// Package datetime provides standardized date/time handling for the
// onboarding-call line: lenient multi-format parsing and per-language
// human-readable formatting.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

// CommonInputFormats are the formats the parser accepts, tried in order
// (more specific first)
var CommonInputFormats = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"01/02/2006 3:04 PM",
	"01/02/2006 15:04",
	"01/02/2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
}

// Human-readable output formats per language
const (
	humanFormatEnglish = "Monday, January 2, 2006 at 3:04 PM"
	humanFormatFrench  = "02/01/2006 à 15:04"
	humanFormatGerman  = "02.01.2006 um 15:04 Uhr"
)

// Parse attempts to parse a date/time string using the common input
// formats
func Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date/time input")
	}

	for _, format := range CommonInputFormats {
		if parsed, err := time.Parse(format, input); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date/time: expected formats like '2006-01-02T15:04:05Z' or '01/02/2006 3:04 PM', got '%s'", input)
}

// FormatForLanguage renders t in the human-readable convention of the
// given language code; unknown codes use the English format
func FormatForLanguage(t time.Time, lang string) string {
	switch lang {
	case "fr":
		return t.Format(humanFormatFrench)
	case "de":
		return t.Format(humanFormatGerman)
	default:
		return t.Format(humanFormatEnglish)
	}
}
