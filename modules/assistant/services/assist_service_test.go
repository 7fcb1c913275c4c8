package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/infrastructure/cache"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

type cannedCompleter struct {
	response string
	err      error
	calls    int
}

func (c *cannedCompleter) Complete(_ context.Context, _ []openai.ChatCompletionMessageParamUnion) (string, error) {
	c.calls++
	return c.response, c.err
}

func TestAssistService_Suggest(t *testing.T) {
	t.Parallel()

	completer := &cannedCompleter{
		response: `[{"field": "data.clauses[0]", "suggestion": "The consultant shall invoice monthly."}]`,
	}
	sut := services.NewAssistService(completer, nil, configuration.OpenAIOptions{Model: "gpt-4o-mini"})

	suggestions, err := sut.Suggest(context.Background(), services.SuggestDTO{
		Title:       "Consulting agreement",
		Payload:     json.RawMessage(`{"clauses":["draft clause"]}`),
		Instruction: "make the payment clause concrete",
	})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "data.clauses[0]", suggestions[0].Field)
	assert.Equal(t, "The consultant shall invoice monthly.", suggestions[0].Suggestion)
}

func TestAssistService_Suggest_CodeFencedResponse(t *testing.T) {
	t.Parallel()

	completer := &cannedCompleter{
		response: "```json\n[{\"field\": \"title\", \"suggestion\": \"Mutual NDA\"}]\n```",
	}
	sut := services.NewAssistService(completer, nil, configuration.OpenAIOptions{})

	suggestions, err := sut.Suggest(context.Background(), services.SuggestDTO{Instruction: "improve the title"})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Mutual NDA", suggestions[0].Suggestion)
}

func TestAssistService_Suggest_ProseFallback(t *testing.T) {
	t.Parallel()

	completer := &cannedCompleter{response: "Consider tightening clause 4."}
	sut := services.NewAssistService(completer, nil, configuration.OpenAIOptions{})

	suggestions, err := sut.Suggest(context.Background(), services.SuggestDTO{Instruction: "review"})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Empty(t, suggestions[0].Field)
	assert.Equal(t, "Consider tightening clause 4.", suggestions[0].Suggestion)
}

func TestAssistService_Suggest_EmptyResponse(t *testing.T) {
	t.Parallel()

	completer := &cannedCompleter{response: "   "}
	sut := services.NewAssistService(completer, nil, configuration.OpenAIOptions{})

	_, err := sut.Suggest(context.Background(), services.SuggestDTO{Instruction: "review"})
	require.ErrorIs(t, err, services.ErrNoSuggestion)
}

func TestAssistService_Suggest_CachesResponse(t *testing.T) {
	t.Parallel()

	completer := &cannedCompleter{
		response: `[{"field": "title", "suggestion": "Mutual NDA"}]`,
	}
	sut := services.NewAssistService(completer, cache.NewInmemCache(), configuration.OpenAIOptions{Model: "gpt-4o-mini"})

	dto := services.SuggestDTO{Title: "NDA", Instruction: "improve the title"}

	first, err := sut.Suggest(context.Background(), dto)
	require.NoError(t, err)
	second, err := sut.Suggest(context.Background(), dto)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, completer.calls)

	// A different instruction misses the cache.
	_, err = sut.Suggest(context.Background(), services.SuggestDTO{Title: "NDA", Instruction: "shorten it"})
	require.NoError(t, err)
	assert.Equal(t, 2, completer.calls)
}
