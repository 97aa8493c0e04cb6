package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsmith/internal/ports"
)

func TestBuild_Builtins(t *testing.T) {
	b := New()
	system, user, err := b.Build(ports.PromptData{
		TargetLocale: "es",
		LocaleName:   "Spanish",
		Lines: []ports.PromptLine{
			{Key: "common.button.save", Text: "Save"},
			{Key: "common.button.cancel", Text: "Cancel"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, system, "Spanish (es)")
	assert.Contains(t, system, `"translations"`)
	assert.Contains(t, user, "common.button.save: Save")
	assert.Contains(t, user, "common.button.cancel: Cancel")
	assert.True(t, strings.Index(user, "common.button.save") < strings.Index(user, "common.button.cancel"),
		"lines keep their given order")
}

func TestBuild_CustomBodies(t *testing.T) {
	b := &Builder{
		SystemBody: "translate to {{.TargetLocale}}",
		UserBody:   "{{len .Lines}} entries",
	}
	system, user, err := b.Build(ports.PromptData{
		TargetLocale: "fr",
		Lines:        []ports.PromptLine{{Key: "a.b.c", Text: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "translate to fr", system)
	assert.Equal(t, "1 entries", user)
}

func TestBuild_BadTemplate(t *testing.T) {
	b := &Builder{SystemBody: "{{.Missing"}
	_, _, err := b.Build(ports.PromptData{})
	assert.Error(t, err)
}
