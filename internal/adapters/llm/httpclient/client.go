package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
)

// Options configures an HTTP-backed chat provider.
type Options struct {
	Type        string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client talks to OpenRouter- or Ollama-style chat APIs and asks for a JSON
// object mapping keys to translations.
type Client struct {
	opts    Options
	prompts ports.PromptBuilder
	http    *resty.Client
}

func New(opts Options, prompts ports.PromptBuilder) *Client {
	opts.Type = strings.ToLower(opts.Type)
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{opts: opts, prompts: prompts, http: resty.New().SetTimeout(opts.Timeout)}
}

func (c *Client) Name() string  { return c.opts.Type }
func (c *Client) Model() string { return c.opts.Model }

func (c *Client) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResponse, error) {
	system, user, err := c.prompts.Build(promptData(req))
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	switch c.opts.Type {
	case "openrouter":
		return c.translateOpenRouter(ctx, system, user)
	case "ollama":
		return c.translateOllama(ctx, system, user)
	default:
		return ports.TranslationResponse{}, fmt.Errorf("unsupported provider: %s", c.opts.Type)
	}
}

func (c *Client) translateOpenRouter(ctx context.Context, system, user string) (ports.TranslationResponse, error) {
	base := c.opts.BaseURL
	if base == "" {
		base = "https://openrouter.ai"
	}
	url := openRouterURL(base, "/chat/completions")
	body := map[string]any{
		"model": c.opts.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": c.opts.Temperature,
		// The keys in the reply are dynamic, so json_object rather than a
		// strict schema.
		"response_format": map[string]string{"type": "json_object"},
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.opts.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(url)
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	if r.IsError() {
		return ports.TranslationResponse{}, fmt.Errorf("openrouter translate: %s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	if len(resp.Choices) == 0 {
		return ports.TranslationResponse{}, fmt.Errorf("no choices returned")
	}
	out, err := extractTranslations(resp.Choices[0].Message.Content)
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	return ports.TranslationResponse{Translations: out}, nil
}

func (c *Client) translateOllama(ctx context.Context, system, user string) (ports.TranslationResponse, error) {
	base := c.opts.BaseURL
	if base == "" {
		base = "http://localhost:11434"
	}
	url := strings.TrimRight(base, "/") + "/api/chat"
	body := map[string]any{
		"model": c.opts.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"stream":  false,
		"format":  "json",
		"options": map[string]any{"temperature": c.opts.Temperature},
	}
	var resp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(url)
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	if r.IsError() {
		return ports.TranslationResponse{}, fmt.Errorf("ollama translate: %s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	out, err := extractTranslations(resp.Message.Content)
	if err != nil {
		return ports.TranslationResponse{}, err
	}
	return ports.TranslationResponse{Translations: out}, nil
}

// Test lists the remote models as a cheap connectivity probe.
func (c *Client) Test(ctx context.Context) error {
	switch c.opts.Type {
	case "ollama":
		base := c.opts.BaseURL
		if base == "" {
			base = "http://localhost:11434"
		}
		r, err := c.http.R().SetContext(ctx).Get(strings.TrimRight(base, "/") + "/api/tags")
		if err != nil {
			return err
		}
		if r.IsError() {
			return fmt.Errorf("ollama test: %s", r.Status())
		}
		return nil
	case "openrouter":
		base := c.opts.BaseURL
		if base == "" {
			base = "https://openrouter.ai"
		}
		r, err := c.http.R().SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.opts.APIKey).
			Get(openRouterURL(base, "/models"))
		if err != nil {
			return err
		}
		if r.IsError() {
			return fmt.Errorf("openrouter test: %s", r.Status())
		}
		return nil
	default:
		return fmt.Errorf("unsupported provider: %s", c.opts.Type)
	}
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

// extractTranslations pulls the key -> translation map out of a model reply,
// tolerating fenced code blocks and prose around the JSON.
func extractTranslations(content string) (map[string]string, error) {
	s := strings.TrimSpace(content)
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}
	if m, ok := decodeTranslations(s); ok {
		return m, nil
	}
	// Try to locate a JSON object within surrounding text.
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			if m, ok := decodeTranslations(s[i : j+1]); ok {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to parse translations JSON; content: %s", abbreviate(s, 2000))
}

func decodeTranslations(s string) (map[string]string, bool) {
	var wrapped struct {
		Translations map[string]string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(s), &wrapped); err == nil && len(wrapped.Translations) > 0 {
		return wrapped.Translations, true
	}
	// Some models return the bare map without the wrapper.
	var bare map[string]string
	if err := json.Unmarshal([]byte(s), &bare); err == nil && len(bare) > 0 {
		return bare, true
	}
	return nil, false
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// openRouterURL builds a URL for OpenRouter whether base contains /api/v1 or not.
func openRouterURL(base, tail string) string {
	b := strings.TrimRight(base, "/")
	if strings.Contains(b, "/api/v1") {
		idx := strings.Index(b, "/api/v1")
		b = b[:idx+len("/api/v1")]
		return b + tail
	}
	return b + "/api/v1" + tail
}
