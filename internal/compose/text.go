package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"msp-onboarding-mailer/internal/types"
)

// Plain-text counterparts of the HTML section builders. Both renderings
// must stay content-equivalent on scalar fields, so these mirror the
// HTML builders line for line.

// textHeader renders the document title with a full-width underline
func textHeader(title string) string {
	return fmt.Sprintf("%s\n%s\n\n", title, strings.Repeat("=", utf8.RuneCountInString(title)+4))
}

// textStep renders a numbered section title with a dashed underline
func textStep(number int, title string) string {
	line := fmt.Sprintf("%d. %s", number, title)
	return fmt.Sprintf("\n%s\n%s\n", line, strings.Repeat("-", utf8.RuneCountInString(line)))
}

// textSectionTitle renders an unnumbered section title
func textSectionTitle(title string) string {
	return fmt.Sprintf("\n%s\n%s\n", title, strings.Repeat("-", utf8.RuneCountInString(title)))
}

// textLabelValue renders one "label: value" summary line
func textLabelValue(label string, value string) string {
	return fmt.Sprintf("  %s: %s\n", label, value)
}

// textBulletList renders list items with a dash prefix
func textBulletList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	return sb.String()
}

// textContactsTable renders supplied contacts as numbered lines
func textContactsTable(contacts []types.ContactRecord) string {
	var sb strings.Builder
	for i, contact := range contacts {
		sb.WriteString(fmt.Sprintf("  %d. %s - %s - %s\n", i+1, contact.Name, contact.Phone, contact.Email))
	}
	return sb.String()
}

// textBlankContactsTable renders numbered fillable lines, capped at the
// tier contact limit like the HTML instruction table
func textBlankContactsTable(rowCount int, contactLimit int) string {
	if rowCount > contactLimit {
		rowCount = contactLimit
	}

	var sb strings.Builder
	for i := 0; i < rowCount; i++ {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Repeat("_", 40)))
	}
	return sb.String()
}

// textScriptBlock indents the raw script; plain text needs no escaping
func textScriptBlock(rawScriptText string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range strings.Split(cleanScriptText(rawScriptText), "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// textFooter renders the separator and footer line
func textFooter(footerLine string) string {
	return fmt.Sprintf("\n%s\n%s\n", strings.Repeat("-", 70), footerLine)
}

// buildText assembles the plain-text fallback document. Section order
// and scalar content match the HTML rendering.
func (c *Composer) buildText(req types.GenerationRequest, plan *emailPlan) string {
	var sb strings.Builder

	sb.WriteString(textHeader(plan.headerTitle))
	sb.WriteString(plan.greeting)
	sb.WriteString("\n\n")
	sb.WriteString(plan.intro)
	sb.WriteString("\n")

	sb.WriteString(textSectionTitle(plan.summaryTitle))
	for _, row := range plan.summary {
		sb.WriteString(textLabelValue(row.label, row.value))
	}

	if plan.contacts != nil {
		sb.WriteString(textStep(plan.contacts.step, plan.contacts.title))
		sb.WriteString(plan.contacts.instruction)
		sb.WriteString("\n\n")
		if len(plan.contacts.contacts) > 0 {
			sb.WriteString(textContactsTable(plan.contacts.contacts))
		} else {
			sb.WriteString(textBlankContactsTable(plan.contacts.blankRows, plan.contacts.limit))
		}
	}

	for _, section := range plan.tenantSections {
		sb.WriteString(textStep(section.step, section.title))
		sb.WriteString(plan.gdapIntroText)
		sb.WriteString("\n\n")
		if section.tenantID != "" {
			sb.WriteString(textLabelValue(plan.tenantIDLabel, section.tenantID))
		}
		sb.WriteString(textLabelValue(plan.linkLabel, section.link))
	}

	if plan.script != nil {
		sb.WriteString(textStep(plan.script.step, plan.script.title))
		sb.WriteString(plan.script.intro)
		sb.WriteString("\n")
		sb.WriteString(textScriptBlock(plan.script.script))
	}

	if plan.condAccess != nil {
		sb.WriteString(textStep(plan.condAccess.step, plan.condAccess.title))
		sb.WriteString(plan.condAccess.intro)
		sb.WriteString("\n\n")
		sb.WriteString(textBulletList(plan.condAccess.bullets))
	}

	if plan.notes != "" {
		sb.WriteString(textSectionTitle(plan.notesTitle))
		sb.WriteString(plan.notes)
		sb.WriteString("\n")
	}

	if plan.callLine != "" {
		sb.WriteString("\n")
		sb.WriteString(plan.callLine)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(plan.closing)
	sb.WriteString("\n\n")
	sb.WriteString(plan.regards)
	sb.WriteString("\n")
	sb.WriteString(req.SenderName)
	sb.WriteString("\n")
	sb.WriteString(req.SenderTitle)
	sb.WriteString("\n")
	sb.WriteString(req.SenderCompany)
	sb.WriteString("\n")
	sb.WriteString(req.SenderEmail)
	sb.WriteString("\n")

	sb.WriteString(textFooter(plan.footer))

	return sb.String()
}
