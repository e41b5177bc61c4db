package compose

import (
	"strings"

	"msp-onboarding-mailer/internal/i18n"
)

// DefaultApprovalURL is the fixed delegated-admin approval link used
// when neither the tenant nor the request supplies one
const DefaultApprovalURL = "https://admin.microsoft.com/AdminPortal/Home#/partners/invitation"

// missingTenantIDMarker stays visible in the rendered script when no
// tenant carries a Microsoft tenant ID
const missingTenantIDMarker = "<tenant-id>"

// roleScriptTemplate is the fixed access-configuration script offered in
// the role-based access section. The composer treats it as opaque text;
// its only responsibilities are tenant ID substitution and escaping.
const roleScriptTemplate = `Connect-MgGraph -TenantId "{tenantId}" -Scopes "Group.ReadWrite.All","RoleManagement.ReadWrite.Directory"

$group = New-MgGroup -DisplayName "MSP Support Operators" -MailEnabled:$false -SecurityEnabled:$true -MailNickname "mspSupportOperators"

$role = Get-MgDirectoryRole -Filter "displayName eq 'Helpdesk Administrator'"
New-MgDirectoryRoleMemberByRef -DirectoryRoleId $role.Id -BodyParameter @{
    "@odata.id" = "https://graph.microsoft.com/v1.0/directoryObjects/$($group.Id)"
}`

// scriptEscapes are applied in order; '&' must come first so entities
// produced by the later replacements are not escaped again
var scriptEscapes = [...][2]string{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#039;"},
}

// RenderRoleScript substitutes the tenant ID into the fixed script
// template
func RenderRoleScript(tenantID string) string {
	return i18n.ReplacePlaceholders(roleScriptTemplate, map[string]string{"tenantId": tenantID})
}

// EscapeScriptText neutralizes HTML metacharacters in free-text script
// content. Tabs are stripped and leading/trailing blank lines dropped
// before escaping. No unescaped '<' or '>' from the input survives.
func EscapeScriptText(raw string) string {
	cleaned := cleanScriptText(raw)
	for _, pair := range scriptEscapes {
		cleaned = strings.ReplaceAll(cleaned, pair[0], pair[1])
	}
	return cleaned
}

// cleanScriptText normalizes line endings, strips tab characters and
// trims blank lines from both ends
func cleanScriptText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\t", "")

	lines := strings.Split(raw, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
