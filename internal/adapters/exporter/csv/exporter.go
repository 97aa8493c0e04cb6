package csv

import (
	"bytes"
	"encoding/csv"

	"locsmith/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }
func (e *Exporter) Ext() string    { return ".csv" }

func (e *Exporter) Export(locale string, rows []ports.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"key", "source", locale}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		v := row.Text
		if v == "" {
			v = row.Source
		}
		if err := w.Write([]string{row.Key, row.Source, v}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
