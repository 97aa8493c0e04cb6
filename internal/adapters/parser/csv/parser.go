package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "csv" }

// Parse reads a CSV table with a header row. The key column is required; the
// text comes from the first of several accepted column names.
func (p *Parser) Parse(data []byte) (map[string]string, error) {
	data = stripBOM(data)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	keyIdx, ok := idx["key"]
	if !ok {
		return nil, errors.New("csv missing 'key' column")
	}
	textIdx := -1
	for _, name := range []string{"translation", "text", "value", "source", "en"} {
		if i, ok := idx[name]; ok {
			textIdx = i
			break
		}
	}
	if textIdx == -1 {
		return nil, errors.New("csv missing text column (translation/text/value/source/en)")
	}
	out := map[string]string{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if keyIdx >= len(rec) || textIdx >= len(rec) {
			continue
		}
		key := rec[keyIdx]
		if key == "" {
			continue
		}
		out[key] = rec[textIdx]
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
