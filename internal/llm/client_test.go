package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// verifyNoLeaks fails the test if a goroutine started by the retry loop
// outlives it. Keep-alive connections of the client transport may linger.
func verifyNoLeaks(t *testing.T) {
	t.Helper()
	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

// recordSleeper records requested delays without waiting.
type recordSleeper struct {
	delays []time.Duration
}

func (s *recordSleeper) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "how do I grow rice?", req.Contents[0].Parts[0].Text)

		writeCandidate(w, "Plant it in water.")
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "how do I grow rice?"})

	require.NoError(t, err)
	assert.Equal(t, "Plant it in water.", resp.Text)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
	assert.Equal(t, 1, resp.Attempts)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestGeminiClient_Generate_RequestBodyShape(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeCandidate(w, "ok")
	}))
	defer srv.Close()

	_, err := NewGeminiClient(testConfig(srv.URL), nil).Generate(context.Background(), GenerateRequest{Prompt: "p"})
	require.NoError(t, err)

	want := map[string]any{
		"contents": []any{
			map[string]any{
				"role":  "user",
				"parts": []any{map[string]any{"text": "p"}},
			},
		},
	}
	assert.Equal(t, want, raw)
}

func TestGeminiClient_Generate_ExhaustsWithExponentialBackoff(t *testing.T) {
	defer verifyNoLeaks(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429}}`))
	}))
	defer srv.Close()

	sleeper := &recordSleeper{}
	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewGeminiClient(testConfig(srv.URL), obs, WithSleeper(sleeper.sleep))
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "test"})

	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(4), attempts.Load())
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, sleeper.delays)
	assert.False(t, captured.Success)
	assert.Equal(t, 4, captured.Attempts)
	assert.Equal(t, "RETRY_EXHAUSTED", captured.ErrorCode)
}

func TestGeminiClient_Generate_RetryThenSucceed(t *testing.T) {
	defer verifyNoLeaks(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeCandidate(w, "third time lucky")
	}))
	defer srv.Close()

	sleeper := &recordSleeper{}
	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{}, WithSleeper(sleeper.sleep))
	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "third time lucky", resp.Text)
	assert.Equal(t, 3, resp.Attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeper.delays)
}

func TestGeminiClient_Generate_MissingCandidatesIsRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	sleeper := &recordSleeper{}
	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{}, WithSleeper(sleeper.sleep))
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "test"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Equal(t, int32(4), attempts.Load())
}

func TestGeminiClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "test"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiClient_Generate_PerAttemptTimeoutRetries(t *testing.T) {
	defer verifyNoLeaks(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		writeCandidate(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	cfg.MaxRetries = 1

	sleeper := &recordSleeper{}
	client := NewGeminiClient(cfg, NoopObserver{}, WithSleeper(sleeper.sleep))
	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestGeminiClient_Generate_CallerCancelStopsRetries(t *testing.T) {
	defer verifyNoLeaks(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancelOnFirstWait := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{}, WithSleeper(cancelOnFirstWait))
	_, err := client.Generate(ctx, GenerateRequest{Prompt: "test"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestContextSleep_ReturnsOnCancel(t *testing.T) {
	defer verifyNoLeaks(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := contextSleep(ctx, 8*time.Second)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGeminiClient_Generate_CallerDeadlineIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeCandidate(w, "late")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewGeminiClient(testConfig(srv.URL), obs)
	_, err := client.Generate(ctx, GenerateRequest{Prompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestGeminiClient_NoAPIKeyHeaderWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("x-goog-api-key"))
		writeCandidate(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	_, err := NewGeminiClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
}

func TestLogObserver_WritesStructuredRecord(t *testing.T) {
	var buf strings.Builder
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(LLMCallEvent{Model: "gemini-2.0-flash", Attempts: 4, LatencyMs: 12, ErrorCode: "RETRY_EXHAUSTED"})

	out := buf.String()
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "attempts=4")
	assert.Contains(t, out, "status=err:RETRY_EXHAUSTED")
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
