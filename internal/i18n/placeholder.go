package i18n

import "strings"

// ReplacePlaceholders replaces every {name} occurrence in template with
// the corresponding value from params. A placeholder without a matching
// param is left verbatim: a missing value should be visible in the
// rendered draft, not crash generation.
func ReplacePlaceholders(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}

	result := template
	for name, value := range params {
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result
}
