package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/infrastructure/cache"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

var ErrNoSuggestion = errors.New("no suggestion from model")

const systemPrompt = `You are a contract drafting assistant. The user sends a
contract document as JSON together with an instruction. Respond ONLY with a
JSON array of objects of the form {"field": "<json path>", "suggestion":
"<replacement text>"}. Do not add prose around the JSON.`

type SuggestDTO struct {
	Title       string
	Payload     json.RawMessage
	Instruction string
}

type FieldSuggestion struct {
	Field      string `json:"field"`
	Suggestion string `json:"suggestion"`
}

// Completer is the LLM round-trip. Production uses the OpenAI-compatible
// chat completions API; tests substitute a canned one.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

type AssistService struct {
	completer Completer
	cache     cache.Cache
	opts      configuration.OpenAIOptions
}

func NewAssistService(completer Completer, c cache.Cache, opts configuration.OpenAIOptions) *AssistService {
	return &AssistService{completer: completer, cache: c, opts: opts}
}

// Suggest asks the model for field-level edits to the document payload.
func (s *AssistService) Suggest(ctx context.Context, dto SuggestDTO) ([]FieldSuggestion, error) {
	payload := dto.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	userMessage := fmt.Sprintf(
		"Contract title: %s\nDocument JSON:\n%s\nInstruction: %s",
		dto.Title, string(payload), dto.Instruction,
	)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(userMessage),
	}

	cached, err := s.getCachedResponse(ctx, messages)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		return parseSuggestions(cached)
	}

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}
	if err := s.saveResponse(ctx, messages, raw); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// parseSuggestions accepts the bare JSON array or one wrapped in a markdown
// code fence, which smaller models tend to emit despite instructions.
func parseSuggestions(raw string) ([]FieldSuggestion, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return nil, ErrNoSuggestion
	}

	var suggestions []FieldSuggestion
	if err := json.Unmarshal([]byte(trimmed), &suggestions); err != nil {
		// Fall back to a single whole-document suggestion.
		return []FieldSuggestion{{Field: "", Suggestion: trimmed}}, nil
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestion
	}
	return suggestions, nil
}

func (s *AssistService) cacheKey(messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	var hashBuffer bytes.Buffer
	if err := gob.NewEncoder(&hashBuffer).Encode(s.opts); err != nil {
		return "", err
	}
	var messageBuffer bytes.Buffer
	if err := gob.NewEncoder(&messageBuffer).Encode(messages); err != nil {
		return "", err
	}
	if _, err := hashBuffer.Write(messageBuffer.Bytes()); err != nil {
		return "", err
	}
	hash := md5.Sum(hashBuffer.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

func (s *AssistService) getCachedResponse(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	if s.cache == nil {
		return "", nil
	}
	key, err := s.cacheKey(messages)
	if err != nil {
		return "", err
	}
	result, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return result, nil
}

func (s *AssistService) saveResponse(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, response string) error {
	if s.cache == nil {
		return nil
	}
	key, err := s.cacheKey(messages)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, response)
}

// OpenAICompleter calls any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	opts configuration.OpenAIOptions
}

func NewOpenAICompleter(opts configuration.OpenAIOptions) *OpenAICompleter {
	return &OpenAICompleter{opts: opts}
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	var client openai.Client
	if c.opts.BaseURL != "" {
		client = openai.NewClient(
			option.WithAPIKey(c.opts.APIKey),
			option.WithBaseURL(c.opts.BaseURL),
		)
	} else {
		client = openai.NewClient(
			option.WithAPIKey(c.opts.APIKey),
		)
	}

	response, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.opts.Model,
		Messages:    messages,
		Temperature: openai.Float(c.opts.Temperature),
		MaxTokens:   openai.Int(int64(c.opts.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get AI response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", ErrNoSuggestion
	}
	return response.Choices[0].Message.Content, nil
}
