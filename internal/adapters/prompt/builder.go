package prompt

import (
	"bytes"
	"text/template"

	"locsmith/internal/ports"
)

// Builder renders the system and user prompts for one batch translation
// call. Custom bodies override the builtins when set.
type Builder struct {
	SystemBody string
	UserBody   string
}

func New() *Builder { return &Builder{} }

func (b *Builder) Build(data ports.PromptData) (string, string, error) {
	system, err := render("system", body(b.SystemBody, systemBuiltin), data)
	if err != nil {
		return "", "", err
	}
	user, err := render("user", body(b.UserBody, userBuiltin), data)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func render(name, tpl string, data ports.PromptData) (string, error) {
	t, err := template.New(name).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func body(custom, builtin string) string {
	if custom != "" {
		return custom
	}
	return builtin
}

const systemBuiltin = "You are a professional UI localization translator. Translate each English string to {{.LocaleName}} ({{.TargetLocale}}). Keep the tone short and neutral as fits interface text. Preserve placeholders exactly (e.g., ${name}, {count}, %s) and do not translate them. Return only a JSON object mapping every key to its translation: {\"translations\":{\"<key>\":\"<translated text>\"}}."

const userBuiltin = "Translate the following entries to {{.LocaleName}}:\n{{range .Lines}}{{.Key}}: {{.Text}}\n{{end}}"
