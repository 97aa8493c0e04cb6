package flatjson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "json" }

// Parse reads a flat JSON object { key: text, ... }. Metadata fields like
// $schema and non-string values are skipped.
func (p *Parser) Parse(data []byte) (map[string]string, error) {
	data = stripBOM(data)
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if len(k) > 0 && k[0] == '$' {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[k] = s
	}
	return out, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
