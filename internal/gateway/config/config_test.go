package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTranscriptEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TRANSCRIPT_MINIO_ENDPOINT", "TRANSCRIPT_S3_ENDPOINT", "TRANSCRIPT_S3_REGION",
		"TRANSCRIPT_S3_ACCESS_KEY", "TRANSCRIPT_S3_SECRET_KEY", "TRANSCRIPT_S3_BUCKET",
		"TRANSCRIPT_S3_USE_SSL", "MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadWorkspaceConfigSplitsRoots(t *testing.T) {
	sep := string(os.PathListSeparator)
	t.Setenv("WORKSPACE_ROOTS", strings.Join([]string{"/a", "/b", "  ", "/c"}, sep))

	got := loadWorkspaceConfig()
	assert.Equal(t, []string{"/a", "/b", "/c"}, got.Roots)
}

func TestLoadWorkspaceConfigEmpty(t *testing.T) {
	t.Setenv("WORKSPACE_ROOTS", "")

	got := loadWorkspaceConfig()
	assert.Empty(t, got.Roots)
}

func TestLoadLLMConfigDefaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT", "LLM_RPS"} {
		t.Setenv(key, "")
	}

	got := loadLLMConfig("local")
	assert.Equal(t, "gemini", got.Provider)
	assert.Empty(t, got.Model)
	assert.Equal(t, 90*time.Second, got.Timeout)
	assert.Zero(t, got.RPS)

	assert.Equal(t, "fake", loadLLMConfig("test").Provider)
}

func TestLoadLLMConfigOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("LLM_RPS", "4")

	got := loadLLMConfig("local")
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 30*time.Second, got.Timeout)
	assert.Equal(t, 4, got.RPS)
}

func TestLoadLLMConfigIgnoresBadValues(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("LLM_RPS", "-3")

	got := loadLLMConfig("local")
	assert.Equal(t, 90*time.Second, got.Timeout)
	assert.Zero(t, got.RPS)
}

func TestLoadTranscriptConfigLocal(t *testing.T) {
	clearTranscriptEnv(t)

	got := loadTranscriptConfig("local")
	assert.True(t, got.Enabled)
	assert.Equal(t, "minio:9000", got.Endpoint)
	assert.Equal(t, "us-east-1", got.Region)
	assert.Equal(t, "contextify-transcripts", got.Bucket)
	assert.False(t, got.UseSSL)
}

func TestLoadTranscriptConfigProduction(t *testing.T) {
	clearTranscriptEnv(t)

	got := loadTranscriptConfig("production")
	assert.False(t, got.Enabled)
	assert.Empty(t, got.Endpoint)

	t.Setenv("TRANSCRIPT_S3_ENDPOINT", "s3.example.com")
	got = loadTranscriptConfig("production")
	assert.True(t, got.Enabled)
	assert.Equal(t, "s3.example.com", got.Endpoint)
	assert.True(t, got.UseSSL)

	t.Setenv("TRANSCRIPT_S3_USE_SSL", "false")
	got = loadTranscriptConfig("production")
	assert.False(t, got.UseSSL)
}

func TestLoadTranscriptConfigMinioRootFallback(t *testing.T) {
	clearTranscriptEnv(t)
	t.Setenv("MINIO_ROOT_USER", "minio")
	t.Setenv("MINIO_ROOT_PASSWORD", "minio123")

	got := loadTranscriptConfig("local")
	assert.Equal(t, "minio", got.AccessKey)
	assert.Equal(t, "minio123", got.SecretKey)
}

func TestTranscriptConfigCanUseS3(t *testing.T) {
	full := TranscriptConfig{
		Endpoint:  "minio:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "b",
	}
	require.True(t, full.CanUseS3())

	for name, mutate := range map[string]func(*TranscriptConfig){
		"endpoint":   func(c *TranscriptConfig) { c.Endpoint = " " },
		"access key": func(c *TranscriptConfig) { c.AccessKey = "" },
		"secret key": func(c *TranscriptConfig) { c.SecretKey = "" },
		"bucket":     func(c *TranscriptConfig) { c.Bucket = "" },
	} {
		c := full
		mutate(&c)
		assert.False(t, c.CanUseS3(), "missing %s", name)
	}
}
