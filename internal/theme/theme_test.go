package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"msp-onboarding-mailer/internal/types"
)

func TestResolveDefaultsEveryField(t *testing.T) {
	resolved := Resolve(types.ThemeOverrides{})
	assert.Equal(t, DefaultPrimaryColor, resolved.PrimaryColor)
	assert.Equal(t, DefaultTextColor, resolved.TextColor)
	assert.Equal(t, DefaultBackgroundColor, resolved.BackgroundColor)
}

func TestResolveFieldsDefaultIndependently(t *testing.T) {
	resolved := Resolve(types.ThemeOverrides{PrimaryColor: "#bada55"})
	assert.Equal(t, "#bada55", resolved.PrimaryColor)
	assert.Equal(t, DefaultTextColor, resolved.TextColor)
	assert.Equal(t, DefaultBackgroundColor, resolved.BackgroundColor)

	resolved = Resolve(types.ThemeOverrides{TextColor: "#111111", BackgroundColor: "#fafafa"})
	assert.Equal(t, DefaultPrimaryColor, resolved.PrimaryColor)
	assert.Equal(t, "#111111", resolved.TextColor)
	assert.Equal(t, "#fafafa", resolved.BackgroundColor)
}

func TestResolveNeverYieldsEmptyColors(t *testing.T) {
	for _, overrides := range []types.ThemeOverrides{
		{},
		{PrimaryColor: ""},
		{PrimaryColor: "#123456", TextColor: "", BackgroundColor: ""},
	} {
		resolved := Resolve(overrides)
		assert.NotEmpty(t, resolved.PrimaryColor)
		assert.NotEmpty(t, resolved.TextColor)
		assert.NotEmpty(t, resolved.BackgroundColor)
	}
}

func TestResolveIsPure(t *testing.T) {
	overrides := types.ThemeOverrides{PrimaryColor: "#336699"}
	assert.Equal(t, Resolve(overrides), Resolve(overrides))
}

func TestTintAppendsAlphaSuffix(t *testing.T) {
	assert.Equal(t, "#0078d41A", Tint("#0078d4"))
	assert.Equal(t, "#ffffff1A", Tint("#ffffff"))
}
