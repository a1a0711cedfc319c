package utils

import (
	"strings"
	"time"
)

// Formatos aceitos na coluna de data, na ordem de tentativa
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"01-02-06",
	"02.01.2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseTimestamp converte o valor de uma célula em data.
// Retorna ok=false para valores vazios ou em formato desconhecido.
func ParseTimestamp(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
