package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetAll(t,
		"ENV", "PORT", "NUCLIA_API_BASE", "KB", "NUCLIA_TOKEN", "NUCLIA_TOKEN_FILE",
		"ANTHROPIC_KEY", "ANTHROPIC_KEY_FILE", "CLAUDE_MODEL", "INSTRUCTIONS",
		"MAX_TOKENS", "TEMPERATURE", "FRONT_ORIGIN",
		"SEARCH_TIMEOUT_SECONDS", "LLM_TIMEOUT_SECONDS", "LLM_REQUESTS_PER_MINUTE",
		"OTEL_ENABLED",
	)

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "claude-3-5-sonnet-latest", cfg.ClaudeModel)
	assert.Equal(t, 900, cfg.MaxTokens)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 30, cfg.SearchTimeoutSeconds)
	assert.Equal(t, 60, cfg.LLMTimeoutSeconds)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.FrontOrigins)
	assert.Equal(t, DefaultInstructions, cfg.Instructions)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("NUCLIA_API_BASE", "https://rag.progress.cloud/api/v1")
	t.Setenv("KB", "uvg-kb")
	t.Setenv("CLAUDE_MODEL", "claude-sonnet-4-0")
	t.Setenv("MAX_TOKENS", "1200")
	t.Setenv("TEMPERATURE", "0.5")

	cfg := Load()

	assert.Equal(t, "https://rag.progress.cloud/api/v1", cfg.NucliaAPIBase)
	assert.Equal(t, "uvg-kb", cfg.KB)
	assert.Equal(t, "claude-sonnet-4-0", cfg.ClaudeModel)
	assert.Equal(t, 1200, cfg.MaxTokens)
	assert.Equal(t, 0.5, cfg.Temperature)
}

func TestLoad_StripsQuotesAndWhitespace(t *testing.T) {
	t.Setenv("NUCLIA_TOKEN", `  "tok-123"  `)
	t.Setenv("ANTHROPIC_KEY", `'sk-ant-xyz'`)

	cfg := Load()

	assert.Equal(t, "tok-123", cfg.NucliaToken)
	assert.Equal(t, "sk-ant-xyz", cfg.AnthropicKey)
}

func TestLoad_SecretFromFile(t *testing.T) {
	unsetAll(t, "NUCLIA_TOKEN")
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))
	t.Setenv("NUCLIA_TOKEN_FILE", path)

	cfg := Load()
	assert.Equal(t, "file-token", cfg.NucliaToken)
}

func TestLoad_DirectEnvBeatsSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("file-token"), 0o600))
	t.Setenv("NUCLIA_TOKEN_FILE", path)
	t.Setenv("NUCLIA_TOKEN", "env-token")

	cfg := Load()
	assert.Equal(t, "env-token", cfg.NucliaToken)
}

func TestLoad_CustomFrontOrigins(t *testing.T) {
	t.Setenv("FRONT_ORIGIN", "https://app.uvg.edu.gt, https://staging.uvg.edu.gt ,")

	cfg := Load()
	assert.Equal(t, []string{"https://app.uvg.edu.gt", "https://staging.uvg.edu.gt"}, cfg.FrontOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_TOKENS", "not-a-number")
	t.Setenv("TEMPERATURE", "warm")

	cfg := Load()
	assert.Equal(t, 900, cfg.MaxTokens)
	assert.Equal(t, 0.2, cfg.Temperature)
}
