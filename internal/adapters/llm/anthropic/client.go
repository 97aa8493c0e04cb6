package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
)

// Client translates batches through the Anthropic Messages API. The system
// and user prompts are folded into a single user message.
type Client struct {
	model   string
	prompts ports.PromptBuilder
	client  anthropic.Client
}

func New(apiKey, model string, prompts ports.PromptBuilder) *Client {
	return &Client{
		model:   model,
		prompts: prompts,
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *Client) Name() string  { return "anthropic" }
func (c *Client) Model() string { return c.model }

func (c *Client) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResponse, error) {
	system, user, err := c.prompts.Build(promptData(req))
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(system + "\n\n" + user)),
		},
	})
	if err != nil {
		return ports.TranslationResponse{}, fmt.Errorf("anthropic translate: %w", err)
	}
	if len(msg.Content) == 0 {
		return ports.TranslationResponse{}, fmt.Errorf("empty response")
	}
	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	var wrapped struct {
		Translations map[string]string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &wrapped); err != nil {
		return ports.TranslationResponse{}, fmt.Errorf("decode translations: %w", err)
	}
	if len(wrapped.Translations) == 0 {
		var bare map[string]string
		if err := json.Unmarshal([]byte(jsonStr), &bare); err == nil && len(bare) > 0 {
			return ports.TranslationResponse{Translations: bare}, nil
		}
		return ports.TranslationResponse{}, fmt.Errorf("response contains no translations")
	}
	return ports.TranslationResponse{Translations: wrapped.Translations}, nil
}

// Test sends a minimal message to verify the key and model are usable.
func (c *Client) Test(ctx context.Context) error {
	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	return err
}

func promptData(req ports.TranslationRequest) ports.PromptData {
	keys := make([]string, 0, len(req.Entries))
	for k := range req.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]ports.PromptLine, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, ports.PromptLine{Key: k, Text: req.Entries[k]})
	}
	return ports.PromptData{
		TargetLocale: req.TargetLocale,
		LocaleName:   domain.LocaleName(req.TargetLocale),
		Lines:        lines,
	}
}

// extractJSON returns the substring between the first { and the last }.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return out, nil
}
