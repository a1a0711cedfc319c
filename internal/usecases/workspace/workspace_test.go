package workspace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/filtering"
	"github.com/gzlb/dash/internal/usecases/uploading"
)

const tradesCSV = `trade id,date,book,nominal,currency
T1,2024-01-15,FX,100,EUR
T2,2024-05-10,Rates,50,USD
T3,2023-12-01,FX,25,USD
`

func newTestWorkspace(t *testing.T) (*Workspace, *uploading.Service) {
	t.Helper()

	rates, err := domain.NewRateTable([]domain.CurrencyRate{{Code: "USD", Rate: 1}, {Code: "EUR", Rate: 1.05}})
	require.NoError(t, err)

	datasets := uploading.NewService(spreadsheet.NewParser())
	registry := NewRegistry()
	require.NoError(t, RegisterDefaultTabs(registry))

	ws := New(registry, Dependencies{
		Datasets:       datasets,
		Filter:         filtering.NewService(),
		Aggregator:     aggregating.NewService(rates, domain.DefaultMonetaryColumn),
		PreviewRows:    2,
		MonetaryColumn: domain.DefaultMonetaryColumn,
	})
	return ws, datasets
}

func TestWorkspace_Planilhas(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	_, err := ws.ActiveSheet()
	assert.ErrorIs(t, err, ErrSheetNotFound)

	first, err := ws.AddSheet("")
	require.NoError(t, err)
	assert.Equal(t, "Sheet 1", first.Name)
	assert.True(t, first.Active)

	second, err := ws.AddSheet("Análise")
	require.NoError(t, err)

	active, err := ws.ActiveSheet()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	require.NoError(t, ws.SetActiveSheet(first.ID))
	sheets := ws.ListSheets()
	require.Len(t, sheets, 2)
	assert.True(t, sheets[0].Active)
	assert.False(t, sheets[1].Active)

	renamed, err := ws.RenameSheet(second.ID, "  Trades ")
	require.NoError(t, err)
	assert.Equal(t, "Trades", renamed.Name)

	_, err = ws.RenameSheet(second.ID, " ")
	assert.ErrorIs(t, err, ErrInvalidSheetName)

	assert.ErrorIs(t, ws.SetActiveSheet("nope"), ErrSheetNotFound)
	_, err = ws.GetSheet("nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWorkspace_DeleteSheetAjustaAtiva(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	a, _ := ws.AddSheet("a")
	b, _ := ws.AddSheet("b")
	c, _ := ws.AddSheet("c")

	// ativa é "c"; remover "a" mantém "c" ativa
	require.NoError(t, ws.DeleteSheet(a.ID))
	active, err := ws.ActiveSheet()
	require.NoError(t, err)
	assert.Equal(t, c.ID, active.ID)

	// remover a ativa (última) passa para a anterior
	require.NoError(t, ws.DeleteSheet(c.ID))
	active, err = ws.ActiveSheet()
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)

	require.NoError(t, ws.DeleteSheet(b.ID))
	_, err = ws.ActiveSheet()
	assert.ErrorIs(t, err, ErrSheetNotFound)

	assert.ErrorIs(t, ws.DeleteSheet(b.ID), ErrSheetNotFound)
}

func TestWorkspace_Abas(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	sheet, err := ws.AddSheet("main")
	require.NoError(t, err)

	upload, err := ws.AddTab(sheet.ID, domain.TabKindUpload, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.Title, "Tab 1: upload"))

	analysis, err := ws.AddTab(sheet.ID, domain.TabKindAnalysis, "Por book")
	require.NoError(t, err)
	assert.Equal(t, "Por book", analysis.Title)

	_, err = ws.AddTab(sheet.ID, "pivot", "")
	assert.ErrorIs(t, err, ErrUnknownTabKind)
	_, err = ws.AddTab("nope", domain.TabKindPlots, "")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	got, err := ws.GetSheet(sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.TabRef{upload, analysis}, got.Tabs)

	tab, ref, err := ws.GetTab(sheet.ID, analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TabKindAnalysis, tab.Kind())
	assert.Equal(t, analysis, ref)

	require.NoError(t, ws.RemoveTab(sheet.ID, upload.ID))
	assert.ErrorIs(t, ws.RemoveTab(sheet.ID, upload.ID), ErrTabNotFound)
	_, _, err = ws.GetTab(sheet.ID, upload.ID)
	assert.ErrorIs(t, err, ErrTabNotFound)

	got, _ = ws.GetSheet(sheet.ID)
	assert.Equal(t, []domain.TabRef{analysis}, got.Tabs)
}

func TestRender_SemDados(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	sheet, _ := ws.AddSheet("main")
	ctx := context.Background()

	for _, kind := range []string{domain.TabKindUpload, domain.TabKindPlots, domain.TabKindAnalysis} {
		ref, err := ws.AddTab(sheet.ID, kind, "")
		require.NoError(t, err)

		view, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{})
		require.NoError(t, err, kind)
		assert.Equal(t, kind, view.Kind)
		assert.Len(t, view.Notices, 1, kind)
		assert.Equal(t, 0, view.RowCount, kind)
	}
}

func TestRender_Upload(t *testing.T) {
	ws, datasets := newTestWorkspace(t)
	_, err := datasets.Load(context.Background(), "trades.csv", strings.NewReader(tradesCSV))
	require.NoError(t, err)

	sheet, _ := ws.AddSheet("main")
	ref, _ := ws.AddTab(sheet.ID, domain.TabKindUpload, "")

	view, err := ws.RenderTab(context.Background(), sheet.ID, ref.ID, RenderRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, view.RowCount)
	assert.Equal(t, 2, view.Table.Len())
	require.Len(t, view.Datasets, 1)
	assert.Equal(t, "trades.csv", view.Datasets[0].Filename)
	assert.Empty(t, view.Notices)
}

func TestRender_Plots(t *testing.T) {
	ws, datasets := newTestWorkspace(t)
	_, err := datasets.Load(context.Background(), "trades.csv", strings.NewReader(tradesCSV))
	require.NoError(t, err)

	sheet, _ := ws.AddSheet("main")
	ref, _ := ws.AddTab(sheet.ID, domain.TabKindPlots, "")
	ctx := context.Background()

	view, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{PlotColumn: "book"})
	require.NoError(t, err)

	require.True(t, view.ChartReady)
	assert.Equal(t, []string{"FX", "Rates"}, view.Chart.Labels)
	assert.Equal(t, []float64{2, 1}, view.Chart.Values)

	// sem coluna escolhida usa a primeira
	view, err = ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "trade id", view.Chart.Column)

	_, err = ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{PlotColumn: "desk"})
	assert.ErrorIs(t, err, ErrInvalidPlotColumn)
}

func TestValueCounts_EmpatesEmOrdemAlfabetica(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"c"},
		Rows:    []domain.Row{{"c": "b"}, {"c": "a"}, {"c": nil}, {"c": 2.0}, {"c": 2}, {"c": "a"}, {"c": "b"}},
	}

	counts := ValueCounts(table, "c")

	assert.Equal(t, []any{"2", "a", "b"}, counts.Values("c"))
	assert.Equal(t, []any{2, 2, 2}, counts.Values("count"))
}

func TestRender_Analysis(t *testing.T) {
	ws, datasets := newTestWorkspace(t)
	_, err := datasets.Load(context.Background(), "trades.csv", strings.NewReader(tradesCSV))
	require.NoError(t, err)

	sheet, _ := ws.AddSheet("main")
	ref, _ := ws.AddTab(sheet.ID, domain.TabKindAnalysis, "")
	ctx := context.Background()

	t.Run("filtro e agrupamento com conversão", func(t *testing.T) {
		view, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{
			Selection:   filtering.Selection{Years: []int{2024}},
			Aggregation: aggregating.Request{GroupColumns: []string{"book"}, Convert: true},
		})
		require.NoError(t, err)

		require.Len(t, view.Selectors, 3)
		assert.Equal(t, ref.ID+"_year", view.Selectors[0].Key)
		assert.Equal(t, []string{"book"}, view.GroupCandidates)

		require.Equal(t, 2, view.RowCount)
		assert.Equal(t, "FX", view.Table.Rows[0]["book"])
		assert.InDelta(t, 105.0, view.Table.Rows[0]["nominal"], 1e-9)
		assert.Equal(t, "Rates", view.Table.Rows[1]["book"])
		assert.True(t, view.ChartReady)
	})

	t.Run("filtro sem resultados", func(t *testing.T) {
		view, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{
			Selection: filtering.Selection{Years: []int{2022}},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, view.RowCount)
		assert.Contains(t, view.Notices, "No rows match the selected date filters.")
	})

	t.Run("rótulo desconhecido", func(t *testing.T) {
		_, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{
			Selection: filtering.Selection{Months: []string{"Smarch"}},
		})
		assert.ErrorIs(t, err, filtering.ErrUnknownLabel)
	})

	t.Run("coluna monetária ausente", func(t *testing.T) {
		_, err := ws.RenderTab(ctx, sheet.ID, ref.ID, RenderRequest{
			Aggregation: aggregating.Request{MonetaryColumn: "notional"},
		})
		assert.ErrorIs(t, err, aggregating.ErrMissingColumn)
	})
}
