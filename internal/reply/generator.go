// Package reply produces the utterance spoken back to the caller on each
// turn. Generation is pluggable: an OpenAI-backed generator when an API key
// is configured, fixed per-step templates otherwise. The adapter on top
// guarantees a usable, non-empty line no matter what the generator does.
package reply

import (
	"context"
	"errors"
	"strings"

	"github.com/groomingco/edge-voice-service/internal/dialogue"
	openai "github.com/sashabaranov/go-openai"
)

// Request carries everything a generator needs for one turn.
type Request struct {
	Persona      string
	CallerText   string
	KnownSummary string
	Step         dialogue.Step // step at which the caller spoke
	Instruction  string
}

// Generator produces the next utterance for a turn.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// OpenAIGenerator asks a chat model for the next line under the Edge
// persona.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator against the configured endpoint.
func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	prompt := turnPrompt(req)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.Persona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TemplateGenerator returns the fixed per-step line. It never fails, which
// also makes it the source of the fallback lines used when generation does.
type TemplateGenerator struct{}

func (TemplateGenerator) Generate(_ context.Context, req Request) (string, error) {
	return templateLine(req.Step), nil
}

// Per-step fixed lines. Each acknowledges the turn and asks the next
// question, so a degraded call still walks the full script.
func templateLine(step dialogue.Step) string {
	switch step {
	case dialogue.StepService:
		return "Got it. And what's your first name?"
	case dialogue.StepName:
		return "Thanks! What day and roughly what time works best for you?"
	case dialogue.StepTime:
		return "Perfect, you're all set. I'll text you a link so you can finish booking."
	default:
		return "Got it, please continue."
	}
}
