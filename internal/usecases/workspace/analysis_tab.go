package workspace

import (
	"context"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/log"
)

// analysisTab aplica o filtro de datas e em seguida a agregação sobre os dados combinados
type analysisTab struct {
	id   string
	deps Dependencies
}

func NewAnalysisTab(id string, deps Dependencies) Tab {
	return &analysisTab{id: id, deps: deps}
}

func (t *analysisTab) ID() string   { return t.id }
func (t *analysisTab) Kind() string { return domain.TabKindAnalysis }

func (t *analysisTab) Render(ctx context.Context, req RenderRequest) (*domain.TabView, error) {
	if err := req.Selection.Validate(); err != nil {
		return nil, err
	}

	view := &domain.TabView{
		TabID: t.id,
		Kind:  domain.TabKindAnalysis,
	}

	combined := t.deps.Datasets.Combined()
	if combined.IsEmpty() {
		view.Table = combined
		view.AddNotice("No data found. Please upload a file in the upload tab first.")
		return view, nil
	}

	filtered := t.deps.Filter.Render(combined, t.id, req.Selection)
	view.Selectors = filtered.Selectors
	if filtered.Applied && filtered.RowCount == 0 {
		view.AddNotice("No rows match the selected date filters.")
	}

	aggReq := req.Aggregation
	if aggReq.MonetaryColumn == "" {
		aggReq.MonetaryColumn = t.deps.MonetaryColumn
	}

	result, err := t.deps.Aggregator.Aggregate(filtered.Table, aggReq)
	if err != nil {
		return nil, err
	}

	view.Table = result.Table
	view.RowCount = result.Table.Len()
	view.GroupCandidates = result.GroupCandidates
	view.Chart = result.Chart
	view.ChartReady = result.ChartReady
	for _, n := range result.Notices {
		view.AddNotice(n)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"tab_id":  t.id,
		"rows":    view.RowCount,
		"grouped": result.Grouped,
	}).Debug("workspace: aba de análise renderizada")

	return view, nil
}
