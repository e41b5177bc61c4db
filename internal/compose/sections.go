package compose

import (
	"fmt"
	"strings"

	"msp-onboarding-mailer/internal/theme"
	"msp-onboarding-mailer/internal/types"
)

// TranslateFunc resolves a translation key with optional placeholder
// params. Section builders receive it instead of a whole bundle so each
// fragment stays a pure function of its inputs.
type TranslateFunc func(key string, params map[string]string) string

// Every builder in this file assumes its string inputs are safe display
// text; EscapeScriptText inside ScriptBlock is the only escaping
// boundary in the composition pipeline.

// SectionHeader renders a titled color band. The accent is either the
// tier color token or the theme primary, chosen by the caller.
func SectionHeader(title string, accentColor string) string {
	return fmt.Sprintf(`<div class="section-header" style="background-color: %s; padding: 12px 20px; margin: 25px 0 15px 0;">
    <h2 style="margin: 0; font-size: 1.2em; color: #ffffff;">%s</h2>
</div>`, accentColor, title)
}

// StepIndicator renders a numbered step heading: a filled circle with
// the step number next to the step title.
func StepIndicator(number int, title string, resolvedTheme theme.Settings) string {
	return fmt.Sprintf(`<div class="step" style="margin: 25px 0 10px 0;">
    <span style="display: inline-block; width: 28px; height: 28px; line-height: 28px; border-radius: 50%%; background-color: %s; color: #ffffff; text-align: center; font-weight: bold;">%d</span>
    <span style="font-size: 1.15em; font-weight: bold; color: %s; margin-left: 8px;">%s</span>
</div>`, resolvedTheme.PrimaryColor, number, resolvedTheme.TextColor, title)
}

// InstructionBox renders a titled callout on the tinted primary color
func InstructionBox(title string, content string, resolvedTheme theme.Settings) string {
	return fmt.Sprintf(`<div class="instruction-box" style="background-color: %s; border-left: 4px solid %s; padding: 15px 20px; margin: 20px 0;">
    <h3 style="margin: 0 0 8px 0; font-size: 1em; color: %s;">%s</h3>
    <p style="margin: 0;">%s</p>
</div>`, theme.Tint(resolvedTheme.PrimaryColor), resolvedTheme.PrimaryColor, resolvedTheme.TextColor, title, content)
}

// ScriptBlock wraps script content in a fixed-width monospace block.
// The content passes through EscapeScriptText, so raw markup from the
// input never reaches the document.
func ScriptBlock(rawScriptText string, resolvedTheme theme.Settings) string {
	return fmt.Sprintf(`<div class="script-block" style="background-color: #f6f8fa; border: 1px solid %s; border-radius: 4px; padding: 15px; margin: 15px 0;">
    <pre style="margin: 0; font-family: 'Courier New', Courier, monospace; font-size: 0.85em; white-space: pre-wrap; word-break: break-word;">%s</pre>
</div>`, theme.Tint(resolvedTheme.PrimaryColor), EscapeScriptText(rawScriptText))
}

// contactColumnKeys are the translated table headers, in column order
var contactColumnKeys = []string{
	"contacts.column.index",
	"contacts.column.first_name",
	"contacts.column.last_name",
	"contacts.column.office_phone",
	"contacts.column.mobile_phone",
	"contacts.column.email",
	"contacts.column.job_title",
}

// ContactsTable renders the supplied contacts as table rows. Name maps
// to the first/last columns (split at the last space), phone to the
// office phone column; mobile and job title stay blank at request level.
func ContactsTable(contacts []types.ContactRecord, resolvedTheme theme.Settings, translate TranslateFunc) string {
	var sb strings.Builder
	writeContactsTableHeader(&sb, resolvedTheme, translate)

	for i, contact := range contacts {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			contact.FirstName(),
			contact.LastName(),
			contact.Phone,
			"",
			contact.Email,
			"",
		}
		writeContactsTableRow(&sb, i, cells, resolvedTheme)
	}

	sb.WriteString("</table>")
	return sb.String()
}

// BlankContactsTable renders rowCount empty fillable rows, capped at the
// tier's authorized contact limit. Used in onboarding-instruction mode
// where the customer returns the completed table.
func BlankContactsTable(rowCount int, contactLimit int, resolvedTheme theme.Settings, translate TranslateFunc) string {
	if rowCount > contactLimit {
		rowCount = contactLimit
	}

	var sb strings.Builder
	writeContactsTableHeader(&sb, resolvedTheme, translate)

	for i := 0; i < rowCount; i++ {
		cells := []string{fmt.Sprintf("%d", i+1), "", "", "", "", "", ""}
		writeContactsTableRow(&sb, i, cells, resolvedTheme)
	}

	sb.WriteString("</table>")
	return sb.String()
}

func writeContactsTableHeader(sb *strings.Builder, resolvedTheme theme.Settings, translate TranslateFunc) {
	sb.WriteString(`<table class="contacts" style="border-collapse: collapse; width: 100%; margin: 15px 0;">` + "\n")
	sb.WriteString("    <tr>\n")
	for _, key := range contactColumnKeys {
		sb.WriteString(fmt.Sprintf(`        <th style="background-color: %s; color: #ffffff; padding: 8px; border: 1px solid %s; font-size: 0.85em; text-align: left;">%s</th>`,
			resolvedTheme.PrimaryColor, resolvedTheme.PrimaryColor, translate(key, nil)))
		sb.WriteString("\n")
	}
	sb.WriteString("    </tr>\n")
}

// writeContactsTableRow emits one row; background alternates by index
// parity (even rows on the base background, odd rows on the tint)
func writeContactsTableRow(sb *strings.Builder, index int, cells []string, resolvedTheme theme.Settings) {
	background := resolvedTheme.BackgroundColor
	if index%2 == 1 {
		background = theme.Tint(resolvedTheme.PrimaryColor)
	}

	sb.WriteString(fmt.Sprintf(`    <tr style="background-color: %s;">`, background))
	sb.WriteString("\n")
	for _, cell := range cells {
		if cell == "" {
			cell = "&nbsp;"
		}
		sb.WriteString(fmt.Sprintf(`        <td style="padding: 8px; border: 1px solid #d0d7de; font-size: 0.9em;">%s</td>`, cell))
		sb.WriteString("\n")
	}
	sb.WriteString("    </tr>\n")
}

// linkButton renders a call-to-action link styled as a button
func linkButton(label string, url string, accentColor string) string {
	return fmt.Sprintf(`<div style="margin: 20px 0;">
    <a href="%s" style="display: inline-block; padding: 12px 24px; background-color: %s; color: white; text-decoration: none; border-radius: 4px; font-weight: bold;">%s</a>
</div>`, url, accentColor, label)
}
