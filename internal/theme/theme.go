// Package theme resolves partial theme overrides into complete,
// render-ready settings.
package theme

import "msp-onboarding-mailer/internal/types"

// Default colors applied when an override field is absent or empty
const (
	DefaultPrimaryColor    = "#0078d4"
	DefaultTextColor       = "#333333"
	DefaultBackgroundColor = "#ffffff"
)

// tintAlphaSuffix is appended to a resolved hex color to derive the
// lightened variant used for boxed section backgrounds. This is plain
// string concatenation producing a CSS 8-digit hex color, not alpha
// compositing; consumers only ever embed the result in inline styles.
const tintAlphaSuffix = "1A"

// Settings is a fully-resolved theme. Every field is non-empty.
type Settings struct {
	PrimaryColor    string
	TextColor       string
	BackgroundColor string
}

// Resolve fills each color independently from the overrides, defaulting
// to the fixed constants. Same input always yields same output.
func Resolve(overrides types.ThemeOverrides) Settings {
	settings := Settings{
		PrimaryColor:    overrides.PrimaryColor,
		TextColor:       overrides.TextColor,
		BackgroundColor: overrides.BackgroundColor,
	}
	if settings.PrimaryColor == "" {
		settings.PrimaryColor = DefaultPrimaryColor
	}
	if settings.TextColor == "" {
		settings.TextColor = DefaultTextColor
	}
	if settings.BackgroundColor == "" {
		settings.BackgroundColor = DefaultBackgroundColor
	}
	return settings
}

// Tint derives the boxed-section background variant of a base color by
// appending the fixed alpha suffix
func Tint(hexColor string) string {
	return hexColor + tintAlphaSuffix
}
