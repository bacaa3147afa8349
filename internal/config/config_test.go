package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"), "test.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != 2440 {
		t.Errorf("port = %d", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if cfg.Composer.MaxPostLength != 3000 {
		t.Errorf("max_post_length = %d", cfg.Composer.MaxPostLength)
	}
	if cfg.Composer.AutoSaveDebounceMS != 1500 {
		t.Errorf("autosave_debounce_ms = %d", cfg.Composer.AutoSaveDebounceMS)
	}
	if cfg.AI.GenerationTimeoutSec != 60 {
		t.Errorf("generation_timeout_sec = %d", cfg.AI.GenerationTimeoutSec)
	}
	if !cfg.PostingEnabled() {
		t.Error("posting should default to enabled")
	}
	if cfg.HasAIKey() {
		t.Error("no providers configured, HasAIKey should be false")
	}
}

func TestParseAliasKeys(t *testing.T) {
	content := `
node_env: production
db_host: db.internal
db_port: 3307
db_user: composer
db_password: s3cret
db_name: composer_prod
cors_allowed_origins:
  - app.example.com
jwtsecret: legacy-secret
`
	cfg, err := Parse([]byte(content), "test.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.IsDev() {
		t.Error("node_env alias not applied")
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 3307 {
		t.Errorf("db aliases not applied: %+v", cfg.Database)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "app.example.com" {
		t.Errorf("cors alias not applied: %v", cfg.AllowedOrigins)
	}
	if cfg.JWTSecret != "legacy-secret" {
		t.Errorf("jwtsecret alias not applied: %q", cfg.JWTSecret)
	}

	want := "composer:s3cret@tcp(db.internal:3307)/composer_prod?charset=utf8mb4&parseTime=True&loc=Local"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestParseExplicitDSNWins(t *testing.T) {
	content := `
database:
  dsn: "user:pw@tcp(1.2.3.4:3306)/db"
  host: ignored.example.com
`
	cfg, err := Parse([]byte(content), "test.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.DSN() != "user:pw@tcp(1.2.3.4:3306)/db" {
		t.Errorf("DSN = %q", cfg.DSN())
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad port", "port: 0", "invalid port"},
		{"bad env", "env: staging", "invalid env"},
		{"bad limit", "composer:\n  max_post_length: 0", "max_post_length"},
		{"bad debounce", "composer:\n  autosave_debounce_ms: -5", "autosave_debounce_ms"},
		{"bad yaml", "port: [", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content), "test.yml")
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestActiveAIProvider(t *testing.T) {
	content := `
ai:
  providers:
    - id: disabled
      type: OpenAI
      api_key: key-a
      enabled: false
    - id: keyless
      type: Anthropic
      enabled: true
    - id: usable
      type: Anthropic
      api_key: key-b
      enabled: true
`
	cfg, err := Parse([]byte(content), "test.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := cfg.ActiveAIProvider()
	if p == nil || p.ID != "usable" {
		t.Errorf("active provider = %+v, want 'usable'", p)
	}
	if !cfg.HasAIKey() {
		t.Error("HasAIKey = false with a usable provider")
	}
}

func TestPostingEnabledFlag(t *testing.T) {
	cfg, err := Parse([]byte("linkedin:\n  posting_enabled: false"), "test.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PostingEnabled() {
		t.Error("explicit false not honored")
	}
}
