package reply

import (
	"context"
	"time"

	"github.com/groomingco/edge-voice-service/internal/prompts"
	"github.com/groomingco/edge-voice-service/pkg/logger"
	"go.uber.org/zap"
)

// Adapter wraps a Generator with the turn's time budget and a fixed
// fallback. A telephony turn must never fail because generation did: on
// timeout, error, or an empty result the caller hears the per-step
// template line instead. No retry is attempted; a late generation result
// dies with its context.
type Adapter struct {
	gen     Generator
	timeout time.Duration
}

// NewAdapter builds the adapter. The timeout must stay well under the
// telephony webhook response deadline.
func NewAdapter(gen Generator, timeout time.Duration) *Adapter {
	return &Adapter{gen: gen, timeout: timeout}
}

// Reply returns the utterance to speak for this turn. It always returns a
// non-empty string.
func (a *Adapter) Reply(ctx context.Context, req Request) string {
	if req.Persona == "" {
		req.Persona = prompts.EdgePersona
	}

	genCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(genCtx, req)
	if err != nil || text == "" {
		logger.Base().Warn("reply generation failed, using fallback",
			zap.Int("step", int(req.Step)),
			zap.Error(err))
		return templateLine(req.Step)
	}
	return text
}

func turnPrompt(req Request) string {
	return prompts.TurnPrompt(req.CallerText, req.KnownSummary, int(req.Step), req.Instruction)
}
