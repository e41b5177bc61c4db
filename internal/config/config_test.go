package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msp-onboarding-mailer/internal/types"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"sender": {"email": "support@northwind-msp.example"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, types.LanguageEnglish, cfg.DefaultLanguage)
	assert.Equal(t, "support@northwind-msp.example", cfg.Sender.Email)
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"aws_region": "eu-central-1",
		"default_language": "de",
		"default_approval_link": "https://example.com/approve",
		"sender": {"name": "Max Keller", "email": "max@northwind-msp.example"},
		"theme": {"primary_color": "#336699"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.AWSRegion)
	assert.Equal(t, "de", cfg.DefaultLanguage)
	assert.Equal(t, "https://example.com/approve", cfg.DefaultApprovalLink)
	assert.Equal(t, "#336699", cfg.Theme.PrimaryColor)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ValidateConfig(cfg), "sender email is required")

	cfg.Sender.Email = "support@northwind-msp.example"
	assert.NoError(t, ValidateConfig(cfg))

	cfg.Credentials = &types.StaticCredentials{AccessKeyID: "AKIA123"}
	assert.Error(t, ValidateConfig(cfg), "partial credentials are rejected")

	cfg.Credentials.SecretAccessKey = "secret"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestApplyRequestDefaults(t *testing.T) {
	cfg := &types.Config{
		DefaultLanguage:     "fr",
		DefaultApprovalLink: "https://example.com/approve",
		Sender: types.SenderConfig{
			Name:    "Max Keller",
			Title:   "Service Delivery Manager",
			Company: "Northwind MSP",
			Email:   "max@northwind-msp.example",
		},
		Theme: types.ThemeOverrides{PrimaryColor: "#336699"},
	}

	t.Run("empty fields are filled", func(t *testing.T) {
		req := types.GenerationRequest{}
		ApplyRequestDefaults(&req, cfg)
		assert.Equal(t, "fr", req.Language)
		assert.Equal(t, "https://example.com/approve", req.DefaultApprovalLink)
		assert.Equal(t, "Max Keller", req.SenderName)
		assert.Equal(t, "Northwind MSP", req.SenderCompany)
		assert.Equal(t, "#336699", req.Theme.PrimaryColor)
	})

	t.Run("request values win over configuration", func(t *testing.T) {
		req := types.GenerationRequest{
			Language:   "de",
			SenderName: "Ana Ruiz",
			Theme:      types.ThemeOverrides{PrimaryColor: "#ff0000"},
		}
		ApplyRequestDefaults(&req, cfg)
		assert.Equal(t, "de", req.Language)
		assert.Equal(t, "Ana Ruiz", req.SenderName)
		assert.Equal(t, "#ff0000", req.Theme.PrimaryColor)
		// Unset fields still come from configuration
		assert.Equal(t, "max@northwind-msp.example", req.SenderEmail)
	})
}
