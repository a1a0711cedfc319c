package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  time.Time
		ok    bool
	}{
		{"ISO", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"ISO com horário", "2024-04-10 13:45:00", time.Date(2024, 4, 10, 13, 45, 0, 0, time.UTC), true},
		{"RFC3339", "2024-04-10T13:45:00Z", time.Date(2024, 4, 10, 13, 45, 0, 0, time.UTC), true},
		{"barra americana", "03/31/2024", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), true},
		{"formato do excel", "01-15-24", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"data e hora do excel", "1/15/24 13:45", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC), true},
		{"ponto europeu", "15.01.2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"time.Time", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"texto inválido", "not a date", time.Time{}, false},
		{"vazio", "   ", time.Time{}, false},
		{"número", 45000.0, time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "esperado %v, obtido %v", tt.want, got)
		})
	}
}
