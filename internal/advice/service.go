package advice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/llm"
)

// FallbackText is shown whenever advice could not be produced.
const FallbackText = "Failed to get advice. Please try again."

// ErrAdviceExhausted is logged when the advice call gives up. It is never
// returned to callers.
var ErrAdviceExhausted = errors.New("advice unavailable after retries")

// Advisor turns a feature set and its predicted yield into advice text.
type Advisor interface {
	// Advise never fails: on any error it returns FallbackText.
	Advise(ctx context.Context, fs domain.FeatureSet, yield float64) string
}

type service struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewService creates an Advisor backed by an LLM client. A nil client
// yields FallbackText for every call.
func NewService(client llm.LLMClient, logger *slog.Logger) Advisor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &service{client: client, logger: logger}
}

func (s *service) Advise(ctx context.Context, fs domain.FeatureSet, yield float64) string {
	if s.client == nil {
		return FallbackText
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{Prompt: BuildPrompt(fs, yield)})
	if err != nil {
		s.logger.WarnContext(ctx, "advice_fallback",
			"error", errors.Join(ErrAdviceExhausted, err).Error())
		return FallbackText
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		s.logger.WarnContext(ctx, "advice_fallback", "error", "empty advice text")
		return FallbackText
	}
	return text
}
