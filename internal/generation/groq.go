package generation

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/scambait/honeypot/pkg/logging"
)

var groqTracer = otel.Tracer("honeypot/groq-generator")

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GroqGenerator produces persona replies through Groq's
// OpenAI-compatible chat completions API.
type GroqGenerator struct {
	client chatClient
	model  string
	logger *logging.Logger
}

// NewGroqGenerator builds a generator against the given endpoint.
// Returns nil when no API key is configured; callers treat a nil
// primary as "scripted replies only".
func NewGroqGenerator(apiKey, baseURL, model string, logger *logging.Logger) *GroqGenerator {
	if apiKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// NewGroqGeneratorWithClient injects a chat client; tests use this to
// avoid the network.
func NewGroqGeneratorWithClient(client chatClient, model string, logger *logging.Logger) *GroqGenerator {
	if logger == nil {
		logger = logging.Default()
	}
	return &GroqGenerator{client: client, model: model, logger: logger}
}

// Generate renders one reply. The reply passes through the output
// guard before it is returned; a guarded reply surfaces as an error
// so the caller can fall back to a scripted line.
func (g *GroqGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, span := groqTracer.Start(ctx, "generation.groq")
	defer span.End()
	span.SetAttributes(
		attribute.String("generation.persona", req.Persona.Name),
		attribute.String("generation.phase", string(req.Phase)),
		attribute.Int("generation.turn", req.Turn),
	)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(req)},
	}
	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, ex := range history {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ex.Scammer},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: ex.Agent},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   200,
		Temperature: 0.85,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("generation: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	reply, err := GuardReply(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn("generated reply rejected", "error", err, "turn", req.Turn)
		span.RecordError(err)
		return "", err
	}
	return reply, nil
}
