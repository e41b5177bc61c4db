package compose

import (
	"fmt"
	"strings"

	"msp-onboarding-mailer/internal/theme"
	"msp-onboarding-mailer/internal/types"
)

// buildHTML assembles the complete, self-contained HTML document. All
// styles are inlined; nothing references an external stylesheet.
func (c *Composer) buildHTML(req types.GenerationRequest, plan *emailPlan) string {
	th := plan.theme

	var sb strings.Builder
	sb.WriteString(htmlDocumentOpen(th))

	sb.WriteString(`    <div class="email-container">` + "\n")

	// Header band on the tier accent color
	sb.WriteString("        ")
	sb.WriteString(htmlHeader(plan.headerTitle, plan.tier.ColorToken))
	sb.WriteString("\n")

	sb.WriteString(`        <div class="content">` + "\n")

	sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.greeting))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.intro))
	sb.WriteString("\n")

	// Tier summary
	sb.WriteString("            ")
	sb.WriteString(SectionHeader(plan.summaryTitle, plan.tier.ColorToken))
	sb.WriteString("\n")
	sb.WriteString(htmlSummaryTable(plan.summary))

	// Authorized contacts
	if plan.contacts != nil {
		sb.WriteString("            ")
		sb.WriteString(StepIndicator(plan.contacts.step, plan.contacts.title, th))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.contacts.instruction))
		sb.WriteString("\n")
		if len(plan.contacts.contacts) > 0 {
			sb.WriteString(ContactsTable(plan.contacts.contacts, th, plan.translate))
		} else {
			sb.WriteString(BlankContactsTable(plan.contacts.blankRows, plan.contacts.limit, th, plan.translate))
		}
		sb.WriteString("\n")
	}

	// Delegated admin approval, one section per tenant
	for _, section := range plan.tenantSections {
		sb.WriteString("            ")
		sb.WriteString(StepIndicator(section.step, section.title, th))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.gdapIntroText))
		sb.WriteString("\n")
		if section.tenantID != "" {
			sb.WriteString(fmt.Sprintf(`            <p><strong>%s:</strong> %s</p>`, plan.tenantIDLabel, section.tenantID))
			sb.WriteString("\n")
		}
		sb.WriteString("            ")
		sb.WriteString(linkButton(plan.linkLabel, section.link, th.PrimaryColor))
		sb.WriteString("\n")
	}

	// Role-based access script
	if plan.script != nil {
		sb.WriteString("            ")
		sb.WriteString(StepIndicator(plan.script.step, plan.script.title, th))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.script.intro))
		sb.WriteString("\n")
		sb.WriteString("            ")
		sb.WriteString(ScriptBlock(plan.script.script, th))
		sb.WriteString("\n")
	}

	// Conditional access policies
	if plan.condAccess != nil {
		sb.WriteString("            ")
		sb.WriteString(StepIndicator(plan.condAccess.step, plan.condAccess.title, th))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.condAccess.intro))
		sb.WriteString("\n")
		if len(plan.condAccess.bullets) > 0 {
			sb.WriteString(`            <ul style="margin: 0 0 15px 0; padding-left: 20px;">` + "\n")
			for _, bullet := range plan.condAccess.bullets {
				sb.WriteString(fmt.Sprintf(`                <li>%s</li>`, bullet))
				sb.WriteString("\n")
			}
			sb.WriteString(`            </ul>` + "\n")
		}
	}

	// Free-text notes; literal newlines become line breaks
	if plan.notes != "" {
		sb.WriteString("            ")
		sb.WriteString(InstructionBox(plan.notesTitle, strings.ReplaceAll(plan.notes, "\n", "<br>"), th))
		sb.WriteString("\n")
	}

	if plan.callLine != "" {
		sb.WriteString(fmt.Sprintf(`            <p>%s</p>`, plan.callLine))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`            <p style="margin-top: 25px;">%s</p>`, plan.closing))
	sb.WriteString("\n")
	sb.WriteString(htmlSignature(req, plan.regards, th))

	sb.WriteString(`        </div>` + "\n")

	// Footer
	sb.WriteString(fmt.Sprintf(`        <div class="footer" style="background-color: #f5f5f5; padding: 15px 20px; font-size: 0.9em; color: #666;">
            <p style="margin: 0;">%s</p>
        </div>`, plan.footer))
	sb.WriteString("\n")

	sb.WriteString(`    </div>` + "\n")

	// Hidden metadata at the end for email client compatibility
	sb.WriteString("    ")
	sb.WriteString(renderHiddenMetadata(req.RequestID, string(plan.tier.Key)))
	sb.WriteString("\n")

	sb.WriteString(`</body>
</html>`)

	return sb.String()
}

func htmlDocumentOpen(th theme.Settings) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif;
            line-height: 1.6;
            color: %s;
            margin: 0;
            padding: 0;
        }
        .email-container {
            max-width: 600px;
            margin: 0 auto;
        }
        .content {
            padding: 20px;
            background-color: %s;
        }
        @media only screen and (max-width: 600px) {
            .email-container {
                width: 100%% !important;
            }
        }
    </style>
</head>
<body>
`, th.TextColor, th.BackgroundColor)
}

// htmlHeader generates the top header band with the document title
func htmlHeader(title string, backgroundColor string) string {
	return fmt.Sprintf(`<div class="header" style="padding: 20px; color: white; background-color: %s;">
    <h1 style="margin: 0; font-size: 1.5em;">%s</h1>
</div>`, backgroundColor, title)
}

func htmlSummaryTable(rows []summaryRow) string {
	var sb strings.Builder
	sb.WriteString(`            <table style="width: 100%; border-collapse: collapse; margin: 10px 0;">` + "\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(`                <tr>
                    <td style="padding: 6px 8px; border-bottom: 1px solid #e9ecef; font-weight: bold; width: 45%%;">%s</td>
                    <td style="padding: 6px 8px; border-bottom: 1px solid #e9ecef;">%s</td>
                </tr>`, row.label, row.value))
		sb.WriteString("\n")
	}
	sb.WriteString(`            </table>` + "\n")
	return sb.String()
}

func htmlSignature(req types.GenerationRequest, regards string, th theme.Settings) string {
	return fmt.Sprintf(`            <p style="margin: 25px 0 5px 0;">%s</p>
            <div class="signature" style="margin-bottom: 20px;">
                <strong>%s</strong><br>
                %s<br>
                %s<br>
                <a href="mailto:%s" style="color: %s; text-decoration: none;">%s</a>
            </div>
`, regards, req.SenderName, req.SenderTitle, req.SenderCompany, req.SenderEmail, th.PrimaryColor, req.SenderEmail)
}
