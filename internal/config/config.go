package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Translator TranslatorConfig `yaml:"translator"`
	Reconcile  ReconcileConfig  `yaml:"reconcile"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8470"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"locsmith.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// TranslatorConfig holds the machine-translation backend settings. An empty
// type disables translation; reconciliation still runs.
type TranslatorConfig struct {
	Type        string        `yaml:"type"        env:"TRANSLATOR_TYPE"`
	APIKey      string        `yaml:"api_key"     env:"TRANSLATOR_API_KEY"`
	BaseURL     string        `yaml:"base_url"    env:"TRANSLATOR_BASE_URL"`
	Model       string        `yaml:"model"       env:"TRANSLATOR_MODEL"`
	Temperature float64       `yaml:"temperature" env:"TRANSLATOR_TEMPERATURE" env-default:"0.2"`
	Timeout     time.Duration `yaml:"timeout"     env:"TRANSLATOR_TIMEOUT"     env-default:"60s"`
}

// Enabled reports whether a translation backend is configured.
func (c TranslatorConfig) Enabled() bool { return c.Type != "" }

// ReconcileConfig holds the merge limits and staleness thresholds.
type ReconcileConfig struct {
	MaxEnglishLength int     `yaml:"max_english_length" env:"RECONCILE_MAX_ENGLISH_LENGTH" env-default:"1000"`
	LengthDeltaRatio float64 `yaml:"length_delta_ratio" env:"RECONCILE_LENGTH_DELTA_RATIO" env-default:"0.2"`
	MinWordOverlap   float64 `yaml:"min_word_overlap"   env:"RECONCILE_MIN_WORD_OVERLAP"   env-default:"0.5"`
}

// NotifyConfig holds change-notification settings.
type NotifyConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"NOTIFY_DEBOUNCE" env-default:"250ms"`
}
