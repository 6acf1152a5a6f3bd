package config

import (
	"os"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	// AI suggestion configuration
	AnthropicAPIKey string
	SuggestModel    string
	SuggestEnabled  bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := supabaseURL + "/auth/v1/.well-known/jwks.json"

	anthropicKey := getEnv("ANTHROPIC_API_KEY", "")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     os.Getenv("TABLE_PREFIX"),
		AnthropicAPIKey: anthropicKey,
		SuggestModel:    getEnv("SUGGEST_MODEL", "claude-haiku-4-5-20251001"),
		// Suggestions are advisory; disabled automatically without an API key
		SuggestEnabled: anthropicKey != "" && getEnv("SUGGEST_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
