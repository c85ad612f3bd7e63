package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/riceyield/internal/domain"
)

// Predictor returns a yield estimate in tons/ha for a feature set.
type Predictor interface {
	// Predict issues exactly one request. It returns an error wrapping
	// ErrNetwork or ErrParse on failure.
	Predict(ctx context.Context, fs domain.FeatureSet) (float64, error)
}

// httpClient implements Predictor against a remote POST /predict route.
type httpClient struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewHTTPClient creates a Predictor for the configured endpoint. The
// returned yield is the backend's value, unclamped.
func NewHTTPClient(cfg Config, logger *slog.Logger) Predictor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

func (c *httpClient) Predict(ctx context.Context, fs domain.FeatureSet) (float64, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	yield, status, err := c.doRequest(ctx, fs)

	attrs := []any{
		"url", c.cfg.URL(),
		"payload", string(c.cfg.Payload),
		"latency_ms", time.Since(start).Milliseconds(),
		"status", status,
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "predict_call", append(attrs, "error_code", errorCode(err), "error", err.Error())...)
		return 0, err
	}
	c.logger.InfoContext(ctx, "predict_call", append(attrs, "predicted_yield", yield)...)
	return yield, nil
}

func (c *httpClient) doRequest(ctx context.Context, fs domain.FeatureSet) (float64, int, error) {
	data, err := json.Marshal(requestBody(fs, c.cfg.Payload))
	if err != nil {
		return 0, 0, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL(), bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: creating request: %v", ErrNetwork, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, httpResp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return 0, httpResp.StatusCode, fmt.Errorf("%w: HTTP error! status: %d", ErrNetwork, httpResp.StatusCode)
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return 0, httpResp.StatusCode, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if resp.PredictedYield == nil {
		return 0, httpResp.StatusCode, fmt.Errorf("%w: predicted_yield missing", ErrParse)
	}

	return *resp.PredictedYield, httpResp.StatusCode, nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrNetwork):
		return "NETWORK"
	case errors.Is(err, ErrParse):
		return "PARSE"
	default:
		return "UNKNOWN"
	}
}
