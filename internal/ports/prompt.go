package ports

// PromptLine is one key/value pair presented to the provider.
type PromptLine struct {
	Key  string
	Text string
}

type PromptData struct {
	TargetLocale string
	LocaleName   string
	Lines        []PromptLine
}

// PromptBuilder renders the system and user prompts for one locale batch.
type PromptBuilder interface {
	Build(data PromptData) (system string, user string, err error)
}
