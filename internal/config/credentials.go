package config

import (
	"net/url"
	"strings"
)

// CredentialReport is the advisory result of checking one collaborator's credentials.
type CredentialReport struct {
	Name   string
	Errors []string
}

// Valid reports whether no problems were found.
func (r CredentialReport) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateGeminiKey checks a Google API key by prefix and length.
func ValidateGeminiKey(apiKey string) CredentialReport {
	report := CredentialReport{Name: "gemini"}
	switch {
	case apiKey == "":
		report.Errors = append(report.Errors, "Google API key is missing")
	case !strings.HasPrefix(apiKey, "AIza"):
		report.Errors = append(report.Errors, `Google API key should start with "AIza"`)
	case len(apiKey) < 30:
		report.Errors = append(report.Errors, "Google API key appears to be too short")
	}
	return report
}

// ValidateOpenAIKey checks an OpenAI-compatible API key by prefix.
func ValidateOpenAIKey(apiKey string) CredentialReport {
	report := CredentialReport{Name: "openai"}
	switch {
	case apiKey == "":
		report.Errors = append(report.Errors, "OpenAI API key is missing")
	case !strings.HasPrefix(apiKey, "sk-"):
		report.Errors = append(report.Errors, `OpenAI API key should start with "sk-"`)
	}
	return report
}

// ValidateElevenLabs checks the speech synthesis API key and voice id.
func ValidateElevenLabs(apiKey, voiceID string) CredentialReport {
	report := CredentialReport{Name: "elevenlabs"}
	switch {
	case apiKey == "":
		report.Errors = append(report.Errors, "ElevenLabs API key is missing")
	case !strings.HasPrefix(apiKey, "sk_"):
		report.Errors = append(report.Errors, `ElevenLabs API key should start with "sk_"`)
	case len(apiKey) < 40:
		report.Errors = append(report.Errors, "ElevenLabs API key appears to be too short")
	}

	switch {
	case voiceID == "":
		report.Errors = append(report.Errors, "ElevenLabs Voice ID is missing")
	case len(voiceID) < 10:
		report.Errors = append(report.Errors, "Voice ID appears to be too short")
	}
	return report
}

// ValidateDatabaseURL checks a Postgres connection string by scheme and host.
func ValidateDatabaseURL(dsn string) CredentialReport {
	report := CredentialReport{Name: "database"}
	if dsn == "" {
		report.Errors = append(report.Errors, "Database URL is missing")
		return report
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		report.Errors = append(report.Errors, `Database URL should start with "postgres://" or "postgresql://"`)
		return report
	}
	if u, err := url.Parse(dsn); err != nil || u.Host == "" {
		report.Errors = append(report.Errors, "Database URL should include a host")
	}
	return report
}

// ValidateCredentials runs every heuristic relevant to cfg. The result is
// diagnostic only: nothing here is enforced when a collaborator is called.
func ValidateCredentials(cfg *Config) []CredentialReport {
	reports := make([]CredentialReport, 0, 3)

	switch cfg.LLM.Provider {
	case "openai":
		reports = append(reports, ValidateOpenAIKey(cfg.LLM.OpenAIAPIKey))
	default:
		reports = append(reports, ValidateGeminiKey(cfg.LLM.GeminiAPIKey))
	}

	reports = append(reports, ValidateElevenLabs(cfg.Speech.ElevenLabsAPIKey, cfg.Speech.VoiceID))

	if cfg.Database.Backend == "postgres" {
		reports = append(reports, ValidateDatabaseURL(cfg.Database.URL))
	}

	return reports
}
