package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	response   *Response
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

// mockLogger is a test implementation of the log.Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any) {}

func testConfig() *Config {
	return &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
		MaxTotalTimeout: time.Second,
	}
}

func TestGenerateContent(t *testing.T) {
	req := &Request{
		System:   "you are a companion",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}

	t.Run("Primary Provider Success", func(t *testing.T) {
		primary := &mockProvider{
			name:     "primary",
			model:    "model-a",
			response: &Response{Text: "hello!", Usage: &Usage{InputTokens: 10, OutputTokens: 2}},
		}
		mgr := NewManager([]Provider{primary}, testConfig(), &mockLogger{})

		resp, err := mgr.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "hello!" {
			t.Errorf("unexpected response text: %q", resp.Text)
		}
		if primary.callCount != 1 {
			t.Errorf("expected 1 call to primary, got %d", primary.callCount)
		}
	})

	t.Run("Fallback To Secondary", func(t *testing.T) {
		primary := &mockProvider{name: "primary", model: "model-a", shouldFail: true}
		secondary := &mockProvider{
			name:     "secondary",
			model:    "model-b",
			response: &Response{Text: "from secondary"},
		}
		mgr := NewManager([]Provider{primary, secondary}, testConfig(), &mockLogger{})

		resp, err := mgr.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "from secondary" {
			t.Errorf("expected fallback response, got %q", resp.Text)
		}
		if primary.callCount != 2 {
			t.Errorf("expected primary retried twice, got %d calls", primary.callCount)
		}
	})

	t.Run("All Providers Fail", func(t *testing.T) {
		p1 := &mockProvider{name: "p1", model: "m1", shouldFail: true}
		p2 := &mockProvider{name: "p2", model: "m2", shouldFail: true}
		mgr := NewManager([]Provider{p1, p2}, testConfig(), &mockLogger{})

		_, err := mgr.GenerateContent(context.Background(), req)
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got: %v", err)
		}
	})

	t.Run("Fallback Disabled Stops After First", func(t *testing.T) {
		p1 := &mockProvider{name: "p1", model: "m1", shouldFail: true}
		p2 := &mockProvider{name: "p2", model: "m2", response: &Response{Text: "never"}}
		cfg := testConfig()
		cfg.FallbackEnabled = false
		mgr := NewManager([]Provider{p1, p2}, cfg, &mockLogger{})

		_, err := mgr.GenerateContent(context.Background(), req)
		if err == nil {
			t.Fatal("expected error with fallback disabled")
		}
		if p2.callCount != 0 {
			t.Errorf("secondary must not be tried with fallback disabled, got %d calls", p2.callCount)
		}
	})

	t.Run("No Providers", func(t *testing.T) {
		mgr := NewManager(nil, testConfig(), &mockLogger{})
		_, err := mgr.GenerateContent(context.Background(), req)
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got: %v", err)
		}
	})
}
