package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	first := &Table{
		Columns: []string{"date", "nominal"},
		Rows:    []Row{{"date": "2024-01-15", "nominal": 100.0}},
	}
	second := &Table{
		Columns: []string{"nominal", "currency"},
		Rows:    []Row{{"nominal": 50.0, "currency": "USD"}},
	}

	out := Concat(first, nil, second)

	require.Equal(t, []string{"date", "nominal", "currency"}, out.Columns)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "2024-01-15", out.Rows[0]["date"])
	assert.Nil(t, out.Rows[0]["currency"])
	assert.Nil(t, out.Rows[1]["date"])
	assert.Equal(t, "USD", out.Rows[1]["currency"])
}

func TestConcat_SemTabelas(t *testing.T) {
	out := Concat()
	assert.Empty(t, out.Columns)
	assert.True(t, out.IsEmpty())
}

func TestTable_DropColumnNaoAlteraOrigem(t *testing.T) {
	src := &Table{
		Columns: []string{"nominal", "currency"},
		Rows:    []Row{{"nominal": 1.0, "currency": "EUR"}},
	}

	out := src.DropColumn("currency")

	assert.Equal(t, []string{"nominal"}, out.Columns)
	_, ok := out.Rows[0]["currency"]
	assert.False(t, ok)
	assert.Equal(t, "EUR", src.Rows[0]["currency"])
	assert.Equal(t, []string{"nominal", "currency"}, src.Columns)
}

func TestTable_Head(t *testing.T) {
	src := &Table{Columns: []string{"a"}, Rows: []Row{{"a": 1.0}, {"a": 2.0}, {"a": 3.0}}}

	assert.Equal(t, 2, src.Head(2).Len())
	assert.Equal(t, 3, src.Head(10).Len())
	assert.Equal(t, 0, (*Table)(nil).Head(5).Len())
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"float", 10.5, 10.5, true},
		{"inteiro", 3, 3, true},
		{"texto numérico", " 42.25 ", 42.25, true},
		{"texto inválido", "abc", 0, false},
		{"NaN", math.NaN(), 0, false},
		{"nil", nil, 0, false},
		{"data", time.Now(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "105", FormatValue(105.0))
	assert.Equal(t, "2024-01-15", FormatValue(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-15 10:30:00", FormatValue(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "7", FormatValue(7))
}

func TestLabels_Bijecao(t *testing.T) {
	for q := 1; q <= 4; q++ {
		label, ok := QuarterLabel(q)
		require.True(t, ok)
		back, ok := QuarterFromLabel(label)
		require.True(t, ok)
		assert.Equal(t, q, back)
	}

	for m := 1; m <= 12; m++ {
		label, ok := MonthLabel(m)
		require.True(t, ok)
		back, ok := MonthFromLabel(label)
		require.True(t, ok)
		assert.Equal(t, m, back)
		assert.Equal(t, (m-1)/3+1, QuarterOfMonth(m))
	}

	_, ok := QuarterLabel(5)
	assert.False(t, ok)
	_, ok = MonthLabel(0)
	assert.False(t, ok)
	_, ok = MonthFromLabel("Smarch")
	assert.False(t, ok)

	q, ok := QuarterFromLabel(" q3 ")
	assert.True(t, ok)
	assert.Equal(t, 3, q)
}

func TestNewRateTable(t *testing.T) {
	table, err := NewRateTable([]CurrencyRate{{Code: " eur ", Rate: 1.05}, {Code: "USD", Rate: 1}})
	require.NoError(t, err)

	rate, ok := table.Rate("EUR")
	assert.True(t, ok)
	assert.Equal(t, 1.05, rate)

	_, ok = table.Rate("JPY")
	assert.False(t, ok)

	assert.Equal(t, []CurrencyRate{{Code: "EUR", Rate: 1.05}, {Code: "USD", Rate: 1}}, table.Entries())

	_, err = NewRateTable([]CurrencyRate{{Code: "GBP", Rate: 0}})
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewRateTable([]CurrencyRate{{Code: "  ", Rate: 1}})
	assert.ErrorIs(t, err, ErrInvalidRate)
}
