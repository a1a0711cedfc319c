package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzlb/dash/internal/domain"
)

func tradesTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"date", "nominal", "currency"},
		Rows: []domain.Row{
			{"date": "2024-01-15", "nominal": 100.0, "currency": "EUR"},
			{"date": "2024-05-10", "nominal": 200.0, "currency": "USD"},
			{"date": "2023-12-01", "nominal": 300.0, "currency": "USD"},
			{"date": "não é data", "nominal": 400.0, "currency": "USD"},
		},
	}
}

func TestRender_SemColunaDeData(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"nominal"},
		Rows:    []domain.Row{{"nominal": 1.0}},
	}

	res := NewService().Render(table, "analysis", Selection{Years: []int{2024}})

	assert.Same(t, table, res.Table)
	assert.False(t, res.Applied)
	assert.Empty(t, res.Selectors)
	assert.Equal(t, 1, res.RowCount)
}

func TestRender_SelecaoVaziaMantemLinhas(t *testing.T) {
	src := tradesTable()

	res := NewService().Render(src, "tab1", Selection{})

	require.True(t, res.Applied)
	require.Equal(t, 4, res.RowCount)
	assert.Equal(t, []string{"date", "nominal", "currency", "year", "quarter", "month"}, res.Table.Columns)
	for i, row := range res.Table.Rows {
		assert.Equal(t, src.Rows[i]["nominal"], row["nominal"])
		assert.Equal(t, src.Rows[i]["currency"], row["currency"])
	}

	// a tabela de origem não recebe as facetas
	_, ok := src.Rows[0]["year"]
	assert.False(t, ok)
	assert.Equal(t, "2024-01-15", src.Rows[0]["date"])
}

func TestRender_FacetasDerivadas(t *testing.T) {
	res := NewService().Render(tradesTable(), "tab1", Selection{})

	first := res.Table.Rows[0]
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first["date"])
	assert.Equal(t, 2024, first["year"])
	assert.Equal(t, 1, first["quarter"])
	assert.Equal(t, 1, first["month"])

	invalid := res.Table.Rows[3]
	assert.Nil(t, invalid["date"])
	assert.Nil(t, invalid["year"])
	assert.Nil(t, invalid["quarter"])
	assert.Nil(t, invalid["month"])
}

func TestRender_AnoETrimestre(t *testing.T) {
	res := NewService().Render(tradesTable(), "tab1", Selection{
		Years:    []int{2024},
		Quarters: []string{"Q1"},
	})

	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, 100.0, res.Table.Rows[0]["nominal"])
}

func TestRender_Seletores(t *testing.T) {
	res := NewService().Render(tradesTable(), "tab1", Selection{Years: []int{2024}})

	require.Len(t, res.Selectors, 3)

	years := res.Selectors[0]
	assert.Equal(t, "tab1_year", years.Key)
	assert.Equal(t, []string{"2023", "2024"}, years.Options)
	assert.Equal(t, []string{"2024"}, years.Selected)

	quarters := res.Selectors[1]
	assert.Equal(t, "tab1_quarter", quarters.Key)
	assert.Equal(t, []string{"Q1", "Q2"}, quarters.Options)

	months := res.Selectors[2]
	assert.Equal(t, "tab1_month", months.Key)
	assert.Equal(t, []string{"January", "May"}, months.Options)
}

func TestRender_OpcoesDeMesDependemDoTrimestre(t *testing.T) {
	res := NewService().Render(tradesTable(), "x", Selection{Quarters: []string{"Q2"}})

	assert.Equal(t, []string{"May"}, res.Selectors[2].Options)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, 200.0, res.Table.Rows[0]["nominal"])
}

func TestRender_SelecionadosNaGrafiaCanonica(t *testing.T) {
	res := NewService().Render(tradesTable(), "x", Selection{
		Quarters: []string{"q1", " Q1 "},
		Months:   []string{"january"},
	})

	quarters := res.Selectors[1]
	assert.Equal(t, []string{"Q1"}, quarters.Selected)
	assert.Subset(t, quarters.Options, quarters.Selected)

	months := res.Selectors[2]
	assert.Equal(t, []string{"January"}, months.Selected)
	assert.Subset(t, months.Options, months.Selected)

	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, 100.0, res.Table.Rows[0]["nominal"])
}

func TestRender_FiltroPorMes(t *testing.T) {
	res := NewService().Render(tradesTable(), "x", Selection{Months: []string{"December", "May"}})

	require.Equal(t, 2, res.RowCount)
	assert.Equal(t, 200.0, res.Table.Rows[0]["nominal"])
	assert.Equal(t, 300.0, res.Table.Rows[1]["nominal"])
}

func TestRender_DatasInvalidasNaoPassamNoFiltro(t *testing.T) {
	res := NewService().Render(tradesTable(), "x", Selection{Years: []int{2023, 2024}})

	assert.Equal(t, 3, res.RowCount)
}

func TestRender_TabelaVazia(t *testing.T) {
	res := NewService().Render(domain.NewTable("date", "nominal"), "x", Selection{})

	assert.True(t, res.Applied)
	assert.Equal(t, 0, res.RowCount)
	assert.Empty(t, res.Selectors[0].Options)
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr bool
	}{
		{"vazia", Selection{}, false},
		{"rótulos válidos", Selection{Quarters: []string{"Q1", "q4"}, Months: []string{"March"}}, false},
		{"trimestre desconhecido", Selection{Quarters: []string{"Q5"}}, true},
		{"mês desconhecido", Selection{Months: []string{"Smarch"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLabel)
				return
			}
			assert.NoError(t, err)
		})
	}
}
