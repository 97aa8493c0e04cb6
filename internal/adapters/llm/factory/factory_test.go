package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsmith/internal/adapters/prompt"
)

func TestNew(t *testing.T) {
	prompts := prompt.New()

	for _, typ := range []string{"openrouter", "ollama", "OpenRouter"} {
		p, err := New(Options{Type: typ, APIKey: "k", Model: "m", Timeout: time.Second}, prompts)
		require.NoError(t, err, typ)
		assert.NotEmpty(t, p.Name())
		assert.Equal(t, "m", p.Model())
	}

	p, err := New(Options{Type: "anthropic", APIKey: "k", Model: "claude"}, prompts)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, "claude", p.Model())

	_, err = New(Options{Type: "deepl"}, prompts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider type")
}
