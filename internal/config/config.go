// Package config provides configuration loading and management functionality.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"msp-onboarding-mailer/internal/types"
)

// GetConfigPath returns the CONFIG_PATH environment variable or defaults to current directory
func GetConfigPath() string {
	configPath, exists := os.LookupEnv("CONFIG_PATH")
	if !exists || configPath == "" {
		return "./"
	}
	if !strings.HasSuffix(configPath, "/") {
		configPath += "/"
	}
	return configPath
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(configPath string) (*types.Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config types.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *types.Config {
	config := &types.Config{}
	applyDefaults(config)
	return config
}

// applyDefaults fills unset fields after parse
func applyDefaults(config *types.Config) {
	if config.AWSRegion == "" {
		config.AWSRegion = "eu-west-1"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = types.LanguageEnglish
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(config *types.Config) error {
	if config.AWSRegion == "" {
		return fmt.Errorf("aws_region is required")
	}
	if config.Sender.Email == "" {
		return fmt.Errorf("sender.email is required")
	}
	if config.Credentials != nil {
		if config.Credentials.AccessKeyID == "" || config.Credentials.SecretAccessKey == "" {
			return fmt.Errorf("credentials require both access_key_id and secret_access_key")
		}
	}
	return nil
}

// ApplyRequestDefaults fills request fields the caller left empty from
// the configured defaults. The request itself wins over configuration.
func ApplyRequestDefaults(req *types.GenerationRequest, config *types.Config) {
	if req.Language == "" {
		req.Language = config.DefaultLanguage
	}
	if req.DefaultApprovalLink == "" {
		req.DefaultApprovalLink = config.DefaultApprovalLink
	}
	if req.SenderName == "" {
		req.SenderName = config.Sender.Name
	}
	if req.SenderTitle == "" {
		req.SenderTitle = config.Sender.Title
	}
	if req.SenderCompany == "" {
		req.SenderCompany = config.Sender.Company
	}
	if req.SenderEmail == "" {
		req.SenderEmail = config.Sender.Email
	}
	if req.Theme.PrimaryColor == "" {
		req.Theme.PrimaryColor = config.Theme.PrimaryColor
	}
	if req.Theme.TextColor == "" {
		req.Theme.TextColor = config.Theme.TextColor
	}
	if req.Theme.BackgroundColor == "" {
		req.Theme.BackgroundColor = config.Theme.BackgroundColor
	}
}
