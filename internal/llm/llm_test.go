package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PREPDRILL_LLM_PROVIDER", "openai")
	t.Setenv("PREPDRILL_OPENAI_API_KEY", "sk-test")
	t.Setenv("PREPDRILL_OPENAI_MODEL", "gpt-4o")
	t.Setenv("PREPDRILL_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("DiscoverConfig() succeeded with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() failed with ANTHROPIC_API_KEY set")
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}

	// Gemini keys take priority over Anthropic.
	t.Setenv("GEMINI_API_KEY", "gm-test")
	cfg, ok = DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() failed with GEMINI_API_KEY set")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() passed without an API key")
	}

	cfg.Gemini.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	cfg.Provider = "grok"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() passed with unknown provider")
	}
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "nonsense"
	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("NewProvider() succeeded with unknown provider")
	}
}

func TestNewProviderMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	result, err := p.Explain(context.Background(), ExplainRequest{CorrectAnswer: "B"})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if result.Text == "" {
		t.Error("Explain() returned empty text")
	}
}

func TestMockProviderQueue(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse("first")
	mock.AddError(&ErrRateLimit{Err: errors.New("slow down")})
	mock.AddResponse("second")

	ctx := context.Background()
	req := ExplainRequest{CorrectAnswer: "A"}

	result, err := mock.Explain(ctx, req)
	if err != nil || result.Text != "first" {
		t.Fatalf("first Explain() = %v, %v", result, err)
	}

	if _, err := mock.Explain(ctx, req); err == nil {
		t.Fatal("second Explain() should fail")
	}

	result, err = mock.Explain(ctx, req)
	if err != nil || result.Text != "second" {
		t.Fatalf("third Explain() = %v, %v", result, err)
	}

	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
	if calls := mock.Calls(); len(calls) != 3 || calls[0].CorrectAnswer != "A" {
		t.Errorf("Calls() = %+v", calls)
	}
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	mock := NewMockProvider()
	mock.AddError(&ErrRateLimit{Err: errors.New("429")})
	mock.AddError(&ErrProviderUnavailable{Err: errors.New("503")})
	mock.AddResponse("done")

	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	})

	result, err := p.Explain(context.Background(), ExplainRequest{})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if result.Text != "done" {
		t.Errorf("Text = %q, want done", result.Text)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider()
	for range 5 {
		mock.AddError(&ErrProviderUnavailable{Err: errors.New("down")})
	}

	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 2,
		InitialWait: time.Millisecond,
		MaxWait:     time.Millisecond,
		Multiplier:  1.0,
	})

	if _, err := p.Explain(context.Background(), ExplainRequest{}); err == nil {
		t.Fatal("Explain() should fail after exhausting attempts")
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", mock.CallCount())
	}
}

func TestRetryDoesNotRetryCancellation(t *testing.T) {
	mock := NewMockProvider()
	mock.AddError(context.Canceled)
	mock.AddResponse("never reached")

	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     time.Millisecond,
		Multiplier:  1.0,
	})

	_, err := p.Explain(context.Background(), ExplainRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Explain() error = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestRetryRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider()
	mock.AddError(&ErrRateLimit{Err: errors.New("429"), RetryAfter: 10 * time.Millisecond})
	mock.AddResponse("ok")

	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 2,
		InitialWait: time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2.0,
	})

	start := time.Now()
	if _, err := p.Explain(context.Background(), ExplainRequest{}); err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	// Jitter keeps the wait within 80-120% of RetryAfter.
	if elapsed := time.Since(start); elapsed < 8*time.Millisecond {
		t.Errorf("retried after %v, want at least 8ms", elapsed)
	}
}

func TestMaxTokensOrDefault(t *testing.T) {
	if got := maxTokensOrDefault(ExplainRequest{}); got != defaultMaxTokens {
		t.Errorf("maxTokensOrDefault(zero) = %d, want %d", got, defaultMaxTokens)
	}
	if got := maxTokensOrDefault(ExplainRequest{MaxTokens: 256}); got != 256 {
		t.Errorf("maxTokensOrDefault(256) = %d", got)
	}
}
