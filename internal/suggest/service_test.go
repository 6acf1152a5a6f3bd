package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSuggestion(t *testing.T) {
	suggestion, err := parseSuggestion(`{"title":"Grocery run","tags":["errands","food"],"summary":"A shopping list."}`)
	require.NoError(t, err)
	require.Equal(t, "Grocery run", suggestion.Title)
	require.Equal(t, []string{"errands", "food"}, suggestion.Tags)
	require.Equal(t, "A shopping list.", suggestion.Summary)
}

func TestParseSuggestionStripsCodeFence(t *testing.T) {
	raw := "Here is the metadata:\n```json\n{\"title\":\"Notes\",\"tags\":[]}\n```\n"
	suggestion, err := parseSuggestion(raw)
	require.NoError(t, err)
	require.Equal(t, "Notes", suggestion.Title)
	require.Empty(t, suggestion.Tags)
}

func TestParseSuggestionMissingTagsDefaultsToEmpty(t *testing.T) {
	suggestion, err := parseSuggestion(`{"title":"Notes"}`)
	require.NoError(t, err)
	require.NotNil(t, suggestion.Tags)
	require.Empty(t, suggestion.Tags)
}

func TestParseSuggestionRejectsNonJSON(t *testing.T) {
	_, err := parseSuggestion("I could not label this text.")
	require.Error(t, err)
}

func TestRegistryResolvesEmbeddedModels(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	provider, err := registry.Provider("anthropic")
	require.NoError(t, err)
	require.NotEmpty(t, provider.Prompt)

	_, err = registry.Model("claude-haiku-4-5-20251001")
	require.NoError(t, err)

	_, err = registry.Model("made-up-model")
	require.Error(t, err)
}
