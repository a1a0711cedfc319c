package workspace

import (
	"context"
	"fmt"
	"sort"

	"github.com/gzlb/dash/internal/domain"
)

const countColumn = "count"

// plotsTab conta as ocorrências de cada valor de uma coluna e gera um gráfico de barras
type plotsTab struct {
	id   string
	deps Dependencies
}

func NewPlotsTab(id string, deps Dependencies) Tab {
	return &plotsTab{id: id, deps: deps}
}

func (t *plotsTab) ID() string   { return t.id }
func (t *plotsTab) Kind() string { return domain.TabKindPlots }

func (t *plotsTab) Render(_ context.Context, req RenderRequest) (*domain.TabView, error) {
	combined := t.deps.Datasets.Combined()

	view := &domain.TabView{
		TabID:           t.id,
		Kind:            domain.TabKindPlots,
		GroupCandidates: append([]string{}, combined.Columns...),
	}

	if combined.IsEmpty() {
		view.AddNotice("No data available. Please upload files first.")
		return view, nil
	}
	if len(combined.Columns) == 0 {
		view.AddNotice("No columns found in data.")
		return view, nil
	}

	column := req.PlotColumn
	if column == "" {
		column = combined.Columns[0]
	}
	if !combined.HasColumn(column) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlotColumn, column)
	}

	counts := ValueCounts(combined, column)
	view.Table = counts
	view.RowCount = counts.Len()
	view.Chart = &domain.BarSeries{
		Title:  fmt.Sprintf("Value counts of %s", column),
		Column: column,
		Labels: make([]string, 0, counts.Len()),
		Values: make([]float64, 0, counts.Len()),
	}
	for _, r := range counts.Rows {
		view.Chart.Labels = append(view.Chart.Labels, r[column].(string))
		view.Chart.Values = append(view.Chart.Values, float64(r[countColumn].(int)))
	}
	view.ChartReady = true

	return view, nil
}

// ValueCounts conta os valores não ausentes da coluna, do mais frequente para o
// menos frequente; empates seguem a ordem alfabética do rótulo
func ValueCounts(table *domain.Table, column string) *domain.Table {
	counts := make(map[string]int)
	for _, v := range table.Values(column) {
		if v == nil {
			continue
		}
		counts[domain.FormatValue(v)]++
	}

	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	out := domain.NewTable(column, countColumn)
	for _, l := range labels {
		out.Rows = append(out.Rows, domain.Row{column: l, countColumn: counts[l]})
	}
	return out
}
