package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/postwave/composer-core/internal/config"
	"go.uber.org/zap"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		AI: config.AIConfig{
			Providers: []config.AIProvider{
				{ID: "p1", Type: "OpenAI", APIKey: "test-key", Enabled: true},
			},
			GenerationTimeoutSec: 5,
		},
	}
}

func testService(cfg *config.AppConfig, call providerCaller) *Service {
	svc := NewService(nil, cfg, nil, zap.NewNop())
	svc.call = call
	return svc
}

func TestGenerateFoldsMarkdown(t *testing.T) {
	svc := testService(testConfig(), func(ctx context.Context, p *config.AIProvider, sys, prompt string) (string, error) {
		return "This is **big** news", nil
	})

	content, err := svc.Generate(context.Background(), "s1", GenerateDTO{Topic: "launch"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(content, "*") {
		t.Errorf("markdown markers survived: %q", content)
	}
	if !strings.Contains(content, "\U0001D41B\U0001D422\U0001D420") {
		t.Errorf("bold run not styled: %q", content)
	}
}

func TestGenerateCapturesContextOnSuccessOnly(t *testing.T) {
	fail := errors.New("provider down")
	calls := 0
	svc := testService(testConfig(), func(ctx context.Context, p *config.AIProvider, sys, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", fail
		}
		return "post body", nil
	})

	if _, err := svc.Generate(context.Background(), "s1", GenerateDTO{Topic: "first"}); !errors.Is(err, fail) {
		t.Fatalf("want provider error, got %v", err)
	}
	if _, ok := svc.Capturer().Last("s1"); ok {
		t.Error("context captured on failure")
	}

	if _, err := svc.Generate(context.Background(), "s1", GenerateDTO{Topic: "second", Tone: "casual"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, ok := svc.Capturer().Last("s1")
	if !ok || got.Topic != "second" {
		t.Errorf("live context = %+v, %v", got, ok)
	}
}

func TestGenerateValidation(t *testing.T) {
	svc := testService(testConfig(), func(ctx context.Context, p *config.AIProvider, sys, prompt string) (string, error) {
		t.Error("provider called despite invalid input")
		return "", nil
	})
	if _, err := svc.Generate(context.Background(), "s1", GenerateDTO{Topic: "   "}); err == nil {
		t.Error("blank topic accepted")
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Providers[0].APIKey = ""
	svc := testService(cfg, func(ctx context.Context, p *config.AIProvider, sys, prompt string) (string, error) {
		t.Error("provider called without key")
		return "", nil
	})
	if _, err := svc.Generate(context.Background(), "s1", GenerateDTO{Topic: "launch"}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("want ErrNoAPIKey, got %v", err)
	}
}

func TestGeneratePromptCarriesBrief(t *testing.T) {
	var seenSys, seenPrompt string
	svc := testService(testConfig(), func(ctx context.Context, p *config.AIProvider, sys, prompt string) (string, error) {
		seenSys, seenPrompt = sys, prompt
		return "ok", nil
	})

	dto := GenerateDTO{Topic: "shipping v2", Tone: "technical", Length: "short", Context: "we rewrote the cache"}
	if _, err := svc.Generate(context.Background(), "s1", dto); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(seenSys, "LinkedIn") {
		t.Error("system prompt missing role")
	}
	for _, want := range []string{"shipping v2", "technical", "under 80 words", "we rewrote the cache"} {
		if !strings.Contains(seenPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, seenPrompt)
		}
	}
}

func TestUnmarshalAIJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"plain", `{"suggestions":["a","b"]}`, true},
		{"fenced", "```json\n{\"suggestions\":[\"a\"]}\n```", true},
		{"chatter", "Here you go: {\"suggestions\":[\"a\"]} hope it helps", true},
		{"garbage", "no json here", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out SuggestionsResult
			err := unmarshalAIJSON(tc.raw, &out)
			if tc.ok && (err != nil || len(out.Suggestions) == 0) {
				t.Errorf("unmarshal failed: %v, %+v", err, out)
			}
			if !tc.ok && err == nil {
				t.Error("garbage accepted")
			}
		})
	}
}
