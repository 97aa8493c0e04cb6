package flatjson

import (
	"encoding/json"

	"locsmith/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "json" }
func (e *Exporter) Ext() string    { return ".json" }

// Export writes a flat JSON object. Untranslated rows fall back to the
// English source so the exported table is always complete.
func (e *Exporter) Export(locale string, rows []ports.ExportRow) ([]byte, error) {
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		v := row.Text
		if v == "" {
			v = row.Source
		}
		out[row.Key] = v
	}
	return json.MarshalIndent(out, "", "  ")
}
