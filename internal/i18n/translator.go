// Package i18n resolves translation keys to localized text with named
// placeholder substitution.
//
// Translation tables are flat key-value YAML files embedded per
// language. Lookup failures never produce errors: a missing key resolves
// to a visibly bracketed marker so incomplete tables surface in rendered
// output instead of as blank sections.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used whenever the requested language has no table
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle holds the per-language translation tables
type Bundle struct {
	tables map[string]map[string]string
}

// NewBundle parses the embedded locale files into a Bundle
func NewBundle() (*Bundle, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", entry.Name(), err)
		}

		tables[lang] = table
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no locale files embedded")
	}
	if _, ok := tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("default language %q has no locale file", DefaultLanguage)
	}

	return &Bundle{tables: tables}, nil
}

// MustNewBundle is NewBundle for static initialization; the locale files
// are embedded, so a parse failure is a build defect
func MustNewBundle() *Bundle {
	bundle, err := NewBundle()
	if err != nil {
		panic(err)
	}
	return bundle
}

// NormalizeLanguage maps an arbitrary language value to a supported
// table: lowercased, region subtags stripped, unknown values fall back
// to the default language.
func (b *Bundle) NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	if _, ok := b.tables[lang]; !ok {
		return DefaultLanguage
	}
	return lang
}

// Lookup returns the raw template for key in the table for lang, without
// placeholder substitution. The bool reports whether the key exists.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	table, ok := b.tables[b.NormalizeLanguage(lang)]
	if !ok {
		return "", false
	}
	template, ok := table[key]
	return template, ok
}

// Resolve looks up key for lang and substitutes params. A missing key
// yields a bracketed [key-lang] marker; an unmatched placeholder stays
// verbatim in the output. Resolve never fails.
func (b *Bundle) Resolve(lang, key string, params map[string]string) string {
	normalized := b.NormalizeLanguage(lang)
	template, ok := b.Lookup(normalized, key)
	if !ok {
		return "[" + key + "-" + normalized + "]"
	}
	return ReplacePlaceholders(template, params)
}

// Languages returns the language codes with a loaded table, sorted
func (b *Bundle) Languages() []string {
	langs := make([]string, 0, len(b.tables))
	for lang := range b.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Keys returns the sorted union of keys across all loaded tables
func (b *Bundle) Keys() []string {
	seen := make(map[string]bool)
	for _, table := range b.tables {
		for key := range table {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
