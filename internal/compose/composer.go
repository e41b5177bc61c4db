// Package compose turns a fully-resolved generation request into a
// deterministic HTML document and a parallel plain-text document.
//
// The composer never fails on data-quality problems: unknown tier keys,
// missing translations, empty tenant lists and unparsable dates all
// degrade to visible fallbacks, and every fallback taken is reported in
// Result.Warnings. Compose is pure and safe for concurrent use.
package compose

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"msp-onboarding-mailer/internal/datetime"
	"msp-onboarding-mailer/internal/i18n"
	"msp-onboarding-mailer/internal/theme"
	"msp-onboarding-mailer/internal/tiers"
	"msp-onboarding-mailer/internal/types"
)

// Result is the composed email plus the fallbacks taken while building it
type Result struct {
	Email    types.RenderedEmail
	Warnings []types.Warning
}

// Composer assembles onboarding emails from the tier catalog and the
// translation bundle. All dependencies are explicit; there is no other
// state.
type Composer struct {
	catalog *tiers.Catalog
	bundle  *i18n.Bundle
}

// NewComposer creates a composer over the given catalog and bundle
func NewComposer(catalog *tiers.Catalog, bundle *i18n.Bundle) *Composer {
	return &Composer{
		catalog: catalog,
		bundle:  bundle,
	}
}

// warningRecorder collects deduplicated warnings during one compose call
type warningRecorder struct {
	warnings []types.Warning
	seen     map[string]bool
}

func newWarningRecorder() *warningRecorder {
	return &warningRecorder{seen: make(map[string]bool)}
}

func (r *warningRecorder) add(code types.WarningCode, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	key := string(code) + "|" + detail
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.warnings = append(r.warnings, types.Warning{Code: code, Detail: detail})
}

// summaryRow is one label/value line of the tier summary
type summaryRow struct {
	label string
	value string
}

// contactsPlan describes the authorized-contacts section
type contactsPlan struct {
	step        int
	title       string
	instruction string
	contacts    []types.ContactRecord
	blankRows   int
	limit       int
}

// tenantSection describes one delegated-admin section instance
type tenantSection struct {
	step     int
	title    string
	tenantID string
	link     string
}

// scriptPlan describes the role-based access section
type scriptPlan struct {
	step   int
	title  string
	intro  string
	script string
}

// bulletPlan describes the conditional access section
type bulletPlan struct {
	step    int
	title   string
	intro   string
	bullets []string
}

// emailPlan is the language- and tier-resolved content shared by the
// HTML and plain-text renderings, so both stay content-equivalent
type emailPlan struct {
	lang           string
	tier           tiers.Definition
	theme          theme.Settings
	subject        string
	headerTitle    string
	greeting       string
	intro          string
	summaryTitle   string
	summary        []summaryRow
	contacts       *contactsPlan
	tenantSections []tenantSection
	script         *scriptPlan
	condAccess     *bulletPlan
	notesTitle     string
	notes          string
	callLine       string
	closing        string
	regards        string
	linkLabel      string
	tenantIDLabel  string
	gdapIntroText  string
	footer         string

	// translate is bound to the request language and the warning
	// recorder of the current compose call; section builders receive it
	// as their resolver
	translate TranslateFunc
}

// Compose builds the onboarding email for the request. It always
// returns a best-effort rendering; data-quality problems surface as
// warnings, never as errors.
func (c *Composer) Compose(req types.GenerationRequest) Result {
	recorder := newWarningRecorder()
	plan := c.buildPlan(req, recorder)

	// Render both documents before reading the recorder: the section
	// builders resolve translations through plan.translate, so warnings
	// can still arrive while the documents render.
	email := types.RenderedEmail{
		Subject:   plan.subject,
		HTML:      c.buildHTML(req, plan),
		PlainText: c.buildText(req, plan),
	}

	return Result{
		Email:    email,
		Warnings: recorder.warnings,
	}
}

// buildPlan resolves tier, theme and all localized content once
func (c *Composer) buildPlan(req types.GenerationRequest, recorder *warningRecorder) *emailPlan {
	lang := c.bundle.NormalizeLanguage(req.Language)

	tier, known := c.catalog.Lookup(req.TierKey)
	if !known {
		recorder.add(types.WarnUnknownTier, "tier key %q not in catalog, using %q", req.TierKey, tier.Key)
	}

	translate := func(key string, params map[string]string) string {
		template, ok := c.bundle.Lookup(lang, key)
		if !ok {
			recorder.add(types.WarnMissingTranslation, "no %s translation for key %q", lang, key)
			return "[" + key + "-" + lang + "]"
		}
		return i18n.ReplacePlaceholders(template, params)
	}

	tierParams := map[string]string{
		"tier":    tier.DisplayName,
		"company": req.CompanyName,
	}
	headerTitle := translate("email.subject", tierParams)

	plan := &emailPlan{
		lang:          lang,
		tier:          tier,
		theme:         theme.Resolve(req.Theme),
		subject:       sanitizeSubject(headerTitle),
		headerTitle:   headerTitle,
		greeting:      translate("greeting", map[string]string{"name": req.RecipientName}),
		intro:         translate("intro", tierParams),
		summaryTitle:  translate("tier.summary.title", tierParams),
		summary:       c.tierSummaryRows(tier, translate),
		closing:       translate("closing", nil),
		regards:       translate("signature.regards", nil),
		linkLabel:     translate("gdap.link_label", nil),
		tenantIDLabel: translate("gdap.tenant_id", nil),
		gdapIntroText: translate("gdap.intro", nil),
		translate:     translate,
		footer: translate("footer.text", map[string]string{
			"company": req.CompanyName,
			"sender":  req.SenderCompany,
		}),
	}

	step := 0
	nextStep := func() int {
		step++
		return step
	}

	if req.SectionFlags.AuthorizedContacts {
		plan.contacts = &contactsPlan{
			step:        nextStep(),
			title:       translate("contacts.title", nil),
			instruction: translate("contacts.instruction", map[string]string{"limit": strconv.Itoa(tier.AuthorizedContactLimit)}),
			contacts:    req.AuthorizedContacts,
			blankRows:   tier.AuthorizedContactLimit,
			limit:       tier.AuthorizedContactLimit,
		}
	}

	if req.SectionFlags.DelegatedAdmin {
		plan.tenantSections = c.tenantSections(req, translate, recorder, nextStep)
	}

	if req.SectionFlags.RoleBasedAccess {
		tenantID := firstTenantID(req.Tenants)
		if tenantID == "" {
			recorder.add(types.WarnMissingTenantID, "no tenant carries a Microsoft tenant ID, script keeps the %q marker", missingTenantIDMarker)
			tenantID = missingTenantIDMarker
		}
		plan.script = &scriptPlan{
			step:   nextStep(),
			title:  translate("rbac.title", nil),
			intro:  translate("rbac.intro", nil),
			script: RenderRoleScript(tenantID),
		}
	}

	if req.SectionFlags.ConditionalAccess {
		plan.condAccess = &bulletPlan{
			step:    nextStep(),
			title:   translate("ca.title", nil),
			intro:   translate("ca.intro", nil),
			bullets: conditionalAccessBullets(req.ConditionalAccess, translate),
		}
	}

	if req.SectionFlags.Notes && strings.TrimSpace(req.FreeTextNotes) != "" {
		plan.notesTitle = translate("notes.title", nil)
		plan.notes = req.FreeTextNotes
	}

	if req.OnboardingCallDate != "" {
		date, err := datetime.Parse(req.OnboardingCallDate)
		if err != nil {
			recorder.add(types.WarnUnparsableDate, "onboarding call date %q not parsable, using placeholder", req.OnboardingCallDate)
			plan.callLine = translate("call.scheduled", map[string]string{"date": translate("call.date_tbd", nil)})
		} else {
			plan.callLine = translate("call.scheduled", map[string]string{"date": datetime.FormatForLanguage(date, lang)})
		}
	}

	return plan
}

// tierSummaryRows builds the label/value lines of the tier summary
func (c *Composer) tierSummaryRows(tier tiers.Definition, translate TranslateFunc) []summaryRow {
	requests := strconv.Itoa(tier.IncludedRequestCount)
	if tier.IncludedRequestCount == tiers.UnlimitedRequests {
		requests = translate("tier.included_requests.unlimited", nil)
	}

	critical := translate("common.no", nil)
	if tier.CriticalSituationSupport {
		critical = translate("common.yes", nil)
	}

	return []summaryRow{
		{translate("tier.support_hours", nil), tier.SupportHours},
		{translate("tier.severity_levels", nil), strings.Join(tier.SeverityLevels, ", ")},
		{translate("tier.included_requests", nil), requests},
		{translate("tier.contact_limit", nil), strconv.Itoa(tier.AuthorizedContactLimit)},
		{translate("tier.tenant_limit", nil), strconv.Itoa(tier.TenantLimit)},
		{translate("tier.critical_situation", nil), critical},
		{translate("tier.products", nil), strings.Join(tier.Products, ", ")},
	}
}

// tenantSections emits one section per tenant, or exactly one fallback
// section with the request-level default link when no tenants exist
func (c *Composer) tenantSections(req types.GenerationRequest, translate TranslateFunc, recorder *warningRecorder, nextStep func() int) []tenantSection {
	defaultLink := req.DefaultApprovalLink
	if defaultLink == "" {
		defaultLink = DefaultApprovalURL
	}

	if len(req.Tenants) == 0 {
		recorder.add(types.WarnEmptyTenantList, "delegated admin section requested without tenants, emitting the default section")
		return []tenantSection{{
			step:  nextStep(),
			title: translate("gdap.title", nil),
			link:  defaultLink,
		}}
	}

	sections := make([]tenantSection, 0, len(req.Tenants))
	for _, tenant := range req.Tenants {
		link := tenant.ApprovalLink
		if link == "" {
			link = defaultLink
		}
		sections = append(sections, tenantSection{
			step:     nextStep(),
			title:    translate("gdap.title.tenant", map[string]string{"domain": tenant.DomainName}),
			tenantID: tenant.MicrosoftTenantID,
			link:     link,
		})
	}
	return sections
}

// conditionalAccessBullets returns the translated bullets for the
// enabled policy toggles, in fixed order
func conditionalAccessBullets(flags types.ConditionalAccessFlags, translate TranslateFunc) []string {
	var bullets []string
	if flags.MFA {
		bullets = append(bullets, translate("ca.mfa", nil))
	}
	if flags.Location {
		bullets = append(bullets, translate("ca.location", nil))
	}
	if flags.Device {
		bullets = append(bullets, translate("ca.device", nil))
	}
	if flags.SignIn {
		bullets = append(bullets, translate("ca.signin", nil))
	}
	return bullets
}

// firstTenantID returns the first non-empty Microsoft tenant ID
func firstTenantID(tenants []types.TenantRecord) string {
	for _, tenant := range tenants {
		if tenant.MicrosoftTenantID != "" {
			return tenant.MicrosoftTenantID
		}
	}
	return ""
}

// sanitizeSubject removes newlines and control characters from subject
// lines to prevent header injection
func sanitizeSubject(subject string) string {
	cleaned := strings.ReplaceAll(subject, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")

	var sb strings.Builder
	for _, r := range cleaned {
		if r >= 32 || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// renderHiddenMetadata generates hidden HTML fields for draft tracking
func renderHiddenMetadata(requestID string, tierKey string) string {
	return fmt.Sprintf(`<div style="display:none; max-height:0px; overflow:hidden;">
    <span id="request-id">%s</span>
    <span id="tier-key">%s</span>
</div>`,
		html.EscapeString(requestID),
		html.EscapeString(tierKey),
	)
}
