package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything the service needs, loaded once at startup and
// injected into collaborators. Nothing reads the environment after Load.
type Config struct {
	Env  string
	Port string

	NucliaAPIBase string
	KB            string
	NucliaToken   string

	AnthropicKey string
	ClaudeModel  string
	Instructions string
	MaxTokens    int
	Temperature  float64

	FrontOrigins []string

	SearchTimeoutSeconds int
	LLMTimeoutSeconds    int
	LLMRequestsPerMinute int

	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:                  getEnv("ENV", "development"),
		Port:                 getEnv("PORT", "8000"),
		NucliaAPIBase:        clean(getEnv("NUCLIA_API_BASE", "")),
		KB:                   clean(getEnv("KB", "")),
		NucliaToken:          clean(getSecret("NUCLIA_TOKEN", "NUCLIA_TOKEN_FILE", "")),
		AnthropicKey:         clean(getSecret("ANTHROPIC_KEY", "ANTHROPIC_KEY_FILE", "")),
		ClaudeModel:          clean(getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-latest")),
		Instructions:         instructionsOrDefault(),
		MaxTokens:            getEnvInt("MAX_TOKENS", 900),
		Temperature:          getEnvFloat("TEMPERATURE", 0.2),
		FrontOrigins:         splitOrigins(getEnv("FRONT_ORIGIN", "http://localhost:5173,http://127.0.0.1:5173")),
		SearchTimeoutSeconds: getEnvInt("SEARCH_TIMEOUT_SECONDS", 30),
		LLMTimeoutSeconds:    getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		LLMRequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 60),
		OTelEnabled:          getEnvBool("OTEL_ENABLED", false),
	}
}

func instructionsOrDefault() string {
	if v := clean(getEnv("INSTRUCTIONS", "")); v != "" {
		return v
	}
	return DefaultInstructions
}

// clean strips whitespace and one layer of surrounding quotes, since tokens
// pasted into .env files often arrive quoted.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	return s
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
