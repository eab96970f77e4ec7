package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
)

// Line items and template colors are stored as JSON text in every backend.
// These are the only functions that read or write that text.

// EncodeLineItems serializes items as a JSON array; nil encodes as "[]".
func EncodeLineItems(items []entities.LineItem) (string, error) {
	if items == nil {
		items = []entities.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode line items: %w", err)
	}
	return string(b), nil
}

// DecodeLineItems parses the stored array. Blank input decodes to an empty
// slice.
func DecodeLineItems(raw string) ([]entities.LineItem, error) {
	if strings.TrimSpace(raw) == "" {
		return []entities.LineItem{}, nil
	}
	var items []entities.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: line items: %v", errs.ErrDecode, err)
	}
	if items == nil {
		items = []entities.LineItem{}
	}
	return items, nil
}

// EncodeTemplateColors returns "" for absent or empty overrides.
func EncodeTemplateColors(c *entities.TemplateColors) (string, error) {
	if c == nil || c.IsEmpty() {
		return "", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode template colors: %w", err)
	}
	return string(b), nil
}

func DecodeTemplateColors(raw string) (*entities.TemplateColors, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var c entities.TemplateColors
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: template colors: %v", errs.ErrDecode, err)
	}
	if c.IsEmpty() {
		return nil, nil
	}
	return &c, nil
}
