package domain

import "time"

// Batch run statuses.
const (
	BatchRunning = "running"
	BatchDone    = "done"
	BatchPartial = "partial"
	BatchFailed  = "failed"
)

// BatchRun records one reconciliation+translation cycle.
type BatchRun struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	CreatedKeys      int        `json:"created_keys"`
	UpdatedKeys      int        `json:"updated_keys"`
	ReusedKeys       int        `json:"reused_keys"`
	TranslatedValues int        `json:"translated_values"`
	FailedLocales    string     `json:"failed_locales"`
	Error            string     `json:"error"`
	CreatedAt        time.Time  `json:"created_at"`
	FinishedAt       *time.Time `json:"finished_at"`
}

// CacheEntry is one memoized provider translation.
type CacheEntry struct {
	SourceText   string    `json:"source_text"`
	TargetLocale string    `json:"target_locale"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Translation  string    `json:"translation"`
	CreatedAt    time.Time `json:"created_at"`
}
