package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/stash/internal/domain"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
)

// Service implements capture.Suggester over the Anthropic Messages API.
type Service struct {
	client   *anthropic.Client
	registry *Registry
	model    string
	logger   *slog.Logger
}

// NewService creates a suggestion service for the given model ID. The model
// must exist in the embedded registry.
func NewService(apiKey, model string, registry *Registry, logger *slog.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if _, err := registry.Model(model); err != nil {
		return nil, err
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Service{
		client:   &client,
		registry: registry,
		model:    model,
		logger:   logger,
	}, nil
}

// Suggest returns a proposed title, tags, and summary for the given text.
func (s *Service) Suggest(ctx context.Context, text string) (*captureSvc.Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: cannot suggest metadata for empty text", domain.ErrValidation)
	}

	provider, err := s.registry.Provider("anthropic")
	if err != nil {
		return nil, err
	}
	model, err := s.registry.Model(s.model)
	if err != nil {
		return nil, err
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(model.MaxTokens),
		System: []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: provider.Prompt,
			},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}

	raw := collectText(message)
	suggestion, err := parseSuggestion(raw)
	if err != nil {
		s.logger.Warn("unparseable suggestion response", "error", err)
		return nil, err
	}

	return suggestion, nil
}

// collectText concatenates the text blocks of a response.
func collectText(message *anthropic.Message) string {
	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

// parseSuggestion extracts the JSON object from the model output. Models
// occasionally wrap the object in prose or a code fence, so parsing scans
// for the outermost braces rather than decoding the raw string.
func parseSuggestion(raw string) (*captureSvc.Suggestion, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in suggestion response")
	}

	var suggestion captureSvc.Suggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &suggestion); err != nil {
		return nil, fmt.Errorf("decode suggestion response: %w", err)
	}

	if suggestion.Tags == nil {
		suggestion.Tags = []string{}
	}
	return &suggestion, nil
}
