package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msp-onboarding-mailer/internal/i18n"
	"msp-onboarding-mailer/internal/tiers"
	"msp-onboarding-mailer/internal/types"
)

func newTestComposer(t *testing.T) (*Composer, *i18n.Bundle) {
	t.Helper()
	bundle, err := i18n.NewBundle()
	require.NoError(t, err)
	return NewComposer(tiers.DefaultCatalog(), bundle), bundle
}

func baseRequest() types.GenerationRequest {
	return types.GenerationRequest{
		RequestID:      "req-123",
		RecipientName:  "Jane Miller",
		RecipientEmail: "jane.miller@contoso.com",
		CompanyName:    "Contoso AG",
		TierKey:        "gold",
		Language:       "en",
		SenderName:     "Max Keller",
		SenderTitle:    "Service Delivery Manager",
		SenderCompany:  "Northwind MSP",
		SenderEmail:    "max.keller@northwind-msp.example",
	}
}

func TestComposeEnabledSectionTitlesAppearOncePerInstance(t *testing.T) {
	composer, bundle := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags = types.SectionFlags{
		AuthorizedContacts: true,
		RoleBasedAccess:    true,
		ConditionalAccess:  true,
		Notes:              true,
	}
	req.ConditionalAccess = types.ConditionalAccessFlags{MFA: true}
	req.FreeTextNotes = "Please park in the visitor lot."
	req.Tenants = []types.TenantRecord{
		{DomainName: "contoso.onmicrosoft.com", MicrosoftTenantID: "11111111-2222-3333-4444-555555555555"},
	}

	result := composer.Compose(req)
	html := result.Email.HTML

	for _, key := range []string{"contacts.title", "rbac.title", "ca.title", "notes.title"} {
		title := bundle.Resolve("en", key, nil)
		assert.Equalf(t, 1, strings.Count(html, title), "expected title for %s exactly once", key)
	}
}

func TestComposePerTenantSectionCount(t *testing.T) {
	composer, bundle := newTestComposer(t)

	t.Run("three tenants yield three titled sections", func(t *testing.T) {
		req := baseRequest()
		req.SectionFlags.DelegatedAdmin = true
		req.Tenants = []types.TenantRecord{
			{DomainName: "alpha.onmicrosoft.com"},
			{DomainName: "beta.onmicrosoft.com"},
			{DomainName: "gamma.onmicrosoft.com"},
		}

		result := composer.Compose(req)
		for _, tenant := range req.Tenants {
			title := bundle.Resolve("en", "gdap.title.tenant", map[string]string{"domain": tenant.DomainName})
			assert.Equal(t, 1, strings.Count(result.Email.HTML, title))
			assert.Equal(t, 1, strings.Count(result.Email.PlainText, title))
		}
	})

	t.Run("zero tenants yield exactly one fallback section", func(t *testing.T) {
		req := baseRequest()
		req.SectionFlags.DelegatedAdmin = true
		req.Tenants = nil
		req.DefaultApprovalLink = "https://example.com/approve"

		result := composer.Compose(req)
		title := bundle.Resolve("en", "gdap.title", nil)
		assert.Equal(t, 1, strings.Count(result.Email.HTML, title))
		assert.Equal(t, 1, strings.Count(result.Email.HTML, "https://example.com/approve"))

		var codes []types.WarningCode
		for _, warning := range result.Warnings {
			codes = append(codes, warning.Code)
		}
		assert.Contains(t, codes, types.WarnEmptyTenantList)
	})
}

func TestComposeFrenchDelegatedAdminScenario(t *testing.T) {
	composer, bundle := newTestComposer(t)

	req := baseRequest()
	req.TierKey = "silver"
	req.Language = "fr"
	req.SectionFlags.DelegatedAdmin = true
	req.Tenants = []types.TenantRecord{{DomainName: "contoso.onmicrosoft.com"}}

	result := composer.Compose(req)
	html := result.Email.HTML

	title := bundle.Resolve("fr", "gdap.title.tenant", map[string]string{"domain": "contoso.onmicrosoft.com"})
	assert.Contains(t, title, "contoso.onmicrosoft.com")
	assert.Contains(t, html, title)
	assert.Equal(t, 1, strings.Count(html, DefaultApprovalURL))
}

func TestComposeUnknownTierFallsBackToFirstEntry(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.TierKey = "unknown-tier"
	req.SectionFlags.AuthorizedContacts = true

	result := composer.Compose(req)
	first := tiers.DefaultCatalog().First()

	assert.Contains(t, result.Email.HTML, first.DisplayName)
	// Bronze allows 2 contacts: 1 header row + 2 blank rows
	assert.Equal(t, first.AuthorizedContactLimit, strings.Count(result.Email.HTML, `<tr style="background-color:`))

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, types.WarnUnknownTier, result.Warnings[0].Code)
	assert.Contains(t, result.Warnings[0].Detail, "unknown-tier")
}

func TestComposeContentParityAcrossRenderings(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags = types.SectionFlags{
		AuthorizedContacts: true,
		DelegatedAdmin:     true,
		RoleBasedAccess:    true,
	}
	req.Tenants = []types.TenantRecord{
		{DomainName: "contoso.onmicrosoft.com", MicrosoftTenantID: "11111111-2222-3333-4444-555555555555"},
	}

	result := composer.Compose(req)
	for _, scalar := range []string{req.SenderName, req.SenderTitle, req.SenderCompany, req.SenderEmail, req.RecipientName, "contoso.onmicrosoft.com"} {
		assert.Contains(t, result.Email.HTML, scalar)
		assert.Contains(t, result.Email.PlainText, scalar)
	}
}

func TestComposeStructurallyStableUnderThemeChange(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags = types.SectionFlags{
		AuthorizedContacts: true,
		DelegatedAdmin:     true,
		ConditionalAccess:  true,
	}
	req.ConditionalAccess = types.ConditionalAccessFlags{MFA: true, Device: true}
	req.Tenants = []types.TenantRecord{{DomainName: "alpha.onmicrosoft.com"}, {DomainName: "beta.onmicrosoft.com"}}

	base := composer.Compose(req)

	req.Theme.BackgroundColor = "#101418"
	themed := composer.Compose(req)

	assert.NotEqual(t, base.Email.HTML, themed.Email.HTML)
	assert.Contains(t, themed.Email.HTML, "#101418")
	for _, marker := range []string{`class="step"`, `class="section-header"`, `class="instruction-box"`, "<li>"} {
		assert.Equal(t, strings.Count(base.Email.HTML, marker), strings.Count(themed.Email.HTML, marker))
	}
	// Plain text ignores theme entirely
	assert.Equal(t, base.Email.PlainText, themed.Email.PlainText)
}

func TestComposeRoleScriptUsesFirstTenantID(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags.RoleBasedAccess = true
	req.Tenants = []types.TenantRecord{
		{DomainName: "alpha.onmicrosoft.com"},
		{DomainName: "beta.onmicrosoft.com", MicrosoftTenantID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
	}

	result := composer.Compose(req)
	assert.Contains(t, result.Email.HTML, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	assert.Contains(t, result.Email.PlainText, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
}

func TestComposeRoleScriptWithoutTenantIDKeepsVisibleMarker(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags.RoleBasedAccess = true

	result := composer.Compose(req)
	assert.Contains(t, result.Email.HTML, "&lt;tenant-id&gt;")
	assert.NotContains(t, result.Email.HTML, `"<tenant-id>"`)

	var codes []types.WarningCode
	for _, warning := range result.Warnings {
		codes = append(codes, warning.Code)
	}
	assert.Contains(t, codes, types.WarnMissingTenantID)
}

func TestComposeNotesSection(t *testing.T) {
	composer, bundle := newTestComposer(t)

	t.Run("newlines become line breaks in HTML only", func(t *testing.T) {
		req := baseRequest()
		req.SectionFlags.Notes = true
		req.FreeTextNotes = "First line\nSecond line"

		result := composer.Compose(req)
		assert.Contains(t, result.Email.HTML, "First line<br>Second line")
		assert.Contains(t, result.Email.PlainText, "First line\nSecond line")
	})

	t.Run("flag without content emits nothing", func(t *testing.T) {
		req := baseRequest()
		req.SectionFlags.Notes = true
		req.FreeTextNotes = "   "

		result := composer.Compose(req)
		assert.NotContains(t, result.Email.HTML, bundle.Resolve("en", "notes.title", nil))
	})
}

func TestComposeOnboardingCallDate(t *testing.T) {
	composer, bundle := newTestComposer(t)

	t.Run("parsable date is formatted", func(t *testing.T) {
		req := baseRequest()
		req.OnboardingCallDate = "2026-09-14 10:00"

		result := composer.Compose(req)
		assert.Contains(t, result.Email.HTML, "September 14, 2026")
		assert.Empty(t, result.Warnings)
	})

	t.Run("unparsable date degrades to placeholder", func(t *testing.T) {
		req := baseRequest()
		req.OnboardingCallDate = "sometime soon"

		result := composer.Compose(req)
		assert.Contains(t, result.Email.HTML, bundle.Resolve("en", "call.date_tbd", nil))
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, types.WarnUnparsableDate, result.Warnings[0].Code)
	})
}

func TestComposeConditionalAccessBullets(t *testing.T) {
	composer, bundle := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags.ConditionalAccess = true
	req.ConditionalAccess = types.ConditionalAccessFlags{MFA: true, SignIn: true}

	result := composer.Compose(req)
	assert.Contains(t, result.Email.HTML, bundle.Resolve("en", "ca.mfa", nil))
	assert.Contains(t, result.Email.HTML, bundle.Resolve("en", "ca.signin", nil))
	assert.NotContains(t, result.Email.HTML, bundle.Resolve("en", "ca.location", nil))
	assert.NotContains(t, result.Email.HTML, bundle.Resolve("en", "ca.device", nil))
}

func TestComposeIsDeterministic(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.SectionFlags = types.SectionFlags{AuthorizedContacts: true, DelegatedAdmin: true, RoleBasedAccess: true, ConditionalAccess: true}
	req.ConditionalAccess = types.ConditionalAccessFlags{MFA: true, Location: true, Device: true, SignIn: true}
	req.Tenants = []types.TenantRecord{{DomainName: "alpha.onmicrosoft.com", MicrosoftTenantID: "11111111-2222-3333-4444-555555555555"}}

	first := composer.Compose(req)
	second := composer.Compose(req)
	assert.Equal(t, first, second)
}

func TestComposeSubjectIsSanitized(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	req.CompanyName = "Contoso\r\nBcc: attacker@example.com"

	result := composer.Compose(req)
	assert.NotContains(t, result.Email.Subject, "\n")
	assert.NotContains(t, result.Email.Subject, "\r")
}

func TestRenderTimeTranslationMissesLandInRecordedWarnings(t *testing.T) {
	composer, _ := newTestComposer(t)

	recorder := newWarningRecorder()
	plan := composer.buildPlan(baseRequest(), recorder)
	before := len(recorder.warnings)

	// Section builders resolve keys through plan.translate while the
	// documents render, after the plan is built; a miss at that point
	// must reach the same recorder the compose result reads.
	resolved := plan.translate("contacts.column.fax", nil)
	assert.Equal(t, "[contacts.column.fax-en]", resolved)

	require.Len(t, recorder.warnings, before+1)
	warning := recorder.warnings[len(recorder.warnings)-1]
	assert.Equal(t, types.WarnMissingTranslation, warning.Code)
	assert.Contains(t, warning.Detail, "contacts.column.fax")
}

func TestComposeHiddenMetadataCarriesRequestID(t *testing.T) {
	composer, _ := newTestComposer(t)

	req := baseRequest()
	result := composer.Compose(req)
	assert.Contains(t, result.Email.HTML, `<span id="request-id">req-123</span>`)
	assert.Contains(t, result.Email.HTML, `<span id="tier-key">gold</span>`)
}
