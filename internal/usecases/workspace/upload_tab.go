package workspace

import (
	"context"

	"github.com/gzlb/dash/internal/domain"
)

const defaultPreviewRows = 20

// uploadTab mostra a lista de arquivos enviados e uma prévia dos dados combinados
type uploadTab struct {
	id   string
	deps Dependencies
}

func NewUploadTab(id string, deps Dependencies) Tab {
	return &uploadTab{id: id, deps: deps}
}

func (t *uploadTab) ID() string   { return t.id }
func (t *uploadTab) Kind() string { return domain.TabKindUpload }

func (t *uploadTab) Render(_ context.Context, _ RenderRequest) (*domain.TabView, error) {
	combined := t.deps.Datasets.Combined()

	view := &domain.TabView{
		TabID:    t.id,
		Kind:     domain.TabKindUpload,
		Datasets: t.deps.Datasets.List(),
		RowCount: combined.Len(),
	}

	if combined.IsEmpty() {
		view.Table = combined
		view.AddNotice("No data uploaded yet. Upload a CSV or XLSX file to get started.")
		return view, nil
	}

	rows := t.deps.PreviewRows
	if rows <= 0 {
		rows = defaultPreviewRows
	}
	view.Table = combined.Head(rows)

	return view, nil
}
