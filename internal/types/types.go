// Package types contains all shared type definitions and structs.
package types

import "strings"

// Language codes supported by the translation tables
const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
	LanguageGerman  = "de"
)

// TenantRecord represents one Microsoft tenant covered by the onboarding
type TenantRecord struct {
	DomainName        string `json:"domain_name"`
	MicrosoftTenantID string `json:"microsoft_tenant_id"`
	ApprovalLink      string `json:"approval_link,omitempty"`
	AzureRelevant     bool   `json:"azure_relevant,omitempty"`
}

// ContactRecord represents an authorized support contact supplied by the caller
type ContactRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FirstName returns the part of Name before the last space
func (c ContactRecord) FirstName() string {
	name := strings.TrimSpace(c.Name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// LastName returns the part of Name after the last space, or empty when
// the name has a single component
func (c ContactRecord) LastName() string {
	name := strings.TrimSpace(c.Name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// SectionFlags controls which optional sections are emitted
type SectionFlags struct {
	AuthorizedContacts bool `json:"authorized_contacts"`
	DelegatedAdmin     bool `json:"delegated_admin"`
	RoleBasedAccess    bool `json:"role_based_access"`
	ConditionalAccess  bool `json:"conditional_access"`
	Notes              bool `json:"notes"`
}

// ConditionalAccessFlags are the independent policy toggles inside the
// conditional access section
type ConditionalAccessFlags struct {
	MFA      bool `json:"mfa"`
	Location bool `json:"location"`
	Device   bool `json:"device"`
	SignIn   bool `json:"sign_in"`
}

// ThemeOverrides carries partial theme settings; empty fields fall back
// to the built-in defaults during theme resolution
type ThemeOverrides struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// GenerationRequest is the fully-resolved input for one onboarding email.
// The caller populates every field before handing it to the composer;
// the composer never mutates it.
type GenerationRequest struct {
	RequestID           string                 `json:"request_id,omitempty"`
	RecipientName       string                 `json:"recipient_name"`
	RecipientEmail      string                 `json:"recipient_email"`
	CompanyName         string                 `json:"company_name"`
	TierKey             string                 `json:"tier_key"`
	Tenants             []TenantRecord         `json:"tenants,omitempty"`
	AuthorizedContacts  []ContactRecord        `json:"authorized_contacts,omitempty"`
	Language            string                 `json:"language"`
	SectionFlags        SectionFlags           `json:"section_flags"`
	ConditionalAccess   ConditionalAccessFlags `json:"conditional_access,omitempty"`
	FreeTextNotes       string                 `json:"free_text_notes,omitempty"`
	OnboardingCallDate  string                 `json:"onboarding_call_date,omitempty"`
	DefaultApprovalLink string                 `json:"default_approval_link,omitempty"`
	SenderName          string                 `json:"sender_name"`
	SenderTitle         string                 `json:"sender_title"`
	SenderCompany       string                 `json:"sender_company"`
	SenderEmail         string                 `json:"sender_email"`
	Theme               ThemeOverrides         `json:"theme,omitempty"`
}

// RenderedEmail is the composed output handed back to the caller
type RenderedEmail struct {
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	PlainText string `json:"plain_text"`
}

// WarningCode classifies a degrade-gracefully event during composition
type WarningCode string

const (
	WarnUnknownTier        WarningCode = "unknown_tier"
	WarnMissingTranslation WarningCode = "missing_translation"
	WarnEmptyTenantList    WarningCode = "empty_tenant_list"
	WarnMissingTenantID    WarningCode = "missing_tenant_id"
	WarnUnparsableDate     WarningCode = "unparsable_date"
)

// Warning records a silent fallback taken while composing. The rendered
// output is never changed by warnings; they exist so callers can surface
// data-quality problems without blocking generation.
type Warning struct {
	Code   WarningCode `json:"code"`
	Detail string      `json:"detail"`
}

// SenderConfig holds the signature identity applied to requests that do
// not carry their own sender fields
type SenderConfig struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// StaticCredentials optionally pins the AWS credentials used for sending
type StaticCredentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Config represents the application configuration
type Config struct {
	AWSRegion           string             `json:"aws_region"`
	LogLevel            string             `json:"log_level"`
	DefaultLanguage     string             `json:"default_language"`
	DefaultApprovalLink string             `json:"default_approval_link"`
	Sender              SenderConfig       `json:"sender"`
	Theme               ThemeOverrides     `json:"theme"`
	Credentials         *StaticCredentials `json:"credentials,omitempty"`
}
