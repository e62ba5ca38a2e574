package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	Workspace  WorkspaceConfig
	LLM        LLMConfig
	Session    SessionConfig
	Transcript TranscriptConfig
}

type WorkspaceConfig struct {
	Roots []string
}

type LLMConfig struct {
	Provider string
	Model    string
	Timeout  time.Duration
	RPS      int
}

type SessionConfig struct {
	Path string
}

type TranscriptConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CanUseS3 reports whether the S3 settings are complete enough to build
// an object store client.
func (t TranscriptConfig) CanUseS3() bool {
	return strings.TrimSpace(t.Endpoint) != "" &&
		strings.TrimSpace(t.AccessKey) != "" &&
		strings.TrimSpace(t.SecretKey) != "" &&
		strings.TrimSpace(t.Bucket) != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:       *port,
		Env:        env,
		Workspace:  loadWorkspaceConfig(),
		LLM:        loadLLMConfig(env),
		Session:    loadSessionConfig(),
		Transcript: loadTranscriptConfig(env),
	}, nil
}

func loadWorkspaceConfig() WorkspaceConfig {
	var roots []string
	for _, root := range filepath.SplitList(os.Getenv("WORKSPACE_ROOTS")) {
		if root = strings.TrimSpace(root); root != "" {
			roots = append(roots, root)
		}
	}
	return WorkspaceConfig{Roots: roots}
}

func loadLLMConfig(env string) LLMConfig {
	timeout := 90 * time.Second
	if raw := strings.TrimSpace(os.Getenv("LLM_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}
	rps := 0
	if raw := strings.TrimSpace(os.Getenv("LLM_RPS")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			rps = v
		}
	}
	// Test runs talk to the fake provider unless one is named explicitly.
	fallback := "gemini"
	if strings.EqualFold(strings.TrimSpace(env), "test") {
		fallback = "fake"
	}
	return LLMConfig{
		Provider: firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_PROVIDER")), fallback),
		Model:    strings.TrimSpace(os.Getenv("LLM_MODEL")),
		Timeout:  timeout,
		RPS:      rps,
	}
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		Path: firstNonEmpty(strings.TrimSpace(os.Getenv("SESSION_STORE_PATH")), "data/sessions.json"),
	}
}

func loadTranscriptConfig(env string) TranscriptConfig {
	endpoint := resolveTranscriptEndpoint(env)
	return TranscriptConfig{
		Enabled:   strings.EqualFold(strings.TrimSpace(env), "local") || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_BUCKET")), "contextify-transcripts"),
		UseSSL:    resolveTranscriptUseSSL(env),
	}
}

func resolveTranscriptEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("TRANSCRIPT_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_ENDPOINT"))
}

func resolveTranscriptUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("TRANSCRIPT_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
