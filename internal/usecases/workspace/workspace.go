package workspace

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/log"
	"github.com/gzlb/dash/pkg/utils"
)

type sheetState struct {
	id   string
	name string
	refs []domain.TabRef
	tabs map[string]Tab
}

func (s *sheetState) view(active bool) domain.Sheet {
	return domain.Sheet{
		ID:     s.id,
		Name:   s.name,
		Tabs:   append([]domain.TabRef{}, s.refs...),
		Active: active,
	}
}

// Workspace é o estado da aplicação: planilhas ordenadas, cada uma com suas abas,
// e o índice da planilha ativa (-1 quando não há nenhuma)
type Workspace struct {
	registry *Registry
	deps     Dependencies

	mu     sync.RWMutex
	sheets []*sheetState
	active int
}

func New(registry *Registry, deps Dependencies) *Workspace {
	return &Workspace{
		registry: registry,
		deps:     deps,
		sheets:   make([]*sheetState, 0),
		active:   -1,
	}
}

// Kinds retorna os tipos de aba que podem ser criados
func (w *Workspace) Kinds() []string {
	return w.registry.Kinds()
}

// AddSheet cria uma planilha vazia e a torna ativa
func (w *Workspace) AddSheet(name string) (domain.Sheet, error) {
	id, err := utils.GenerateShortID()
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("erro ao gerar ID da planilha: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Sheet %d", len(w.sheets)+1)
	}

	sheet := &sheetState{
		id:   id,
		name: name,
		refs: make([]domain.TabRef, 0),
		tabs: make(map[string]Tab),
	}
	w.sheets = append(w.sheets, sheet)
	w.active = len(w.sheets) - 1

	log.L.WithFields(log.Fields{"sheet_id": id, "name": name}).Debug("workspace: planilha criada")

	return sheet.view(true), nil
}

func (w *Workspace) ListSheets() []domain.Sheet {
	w.mu.RLock()
	defer w.mu.RUnlock()

	sheets := make([]domain.Sheet, 0, len(w.sheets))
	for i, s := range w.sheets {
		sheets = append(sheets, s.view(i == w.active))
	}
	return sheets
}

func (w *Workspace) GetSheet(id string) (domain.Sheet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i, err := w.indexOf(id)
	if err != nil {
		return domain.Sheet{}, err
	}
	return w.sheets[i].view(i == w.active), nil
}

func (w *Workspace) RenameSheet(id, name string) (domain.Sheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Sheet{}, ErrInvalidSheetName
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexOf(id)
	if err != nil {
		return domain.Sheet{}, err
	}
	w.sheets[i].name = name
	return w.sheets[i].view(i == w.active), nil
}

// DeleteSheet remove a planilha e suas abas. Se ela era a ativa, a planilha que
// ocupar a mesma posição (ou a última) passa a ser a ativa.
func (w *Workspace) DeleteSheet(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexOf(id)
	if err != nil {
		return err
	}

	w.sheets = append(w.sheets[:i], w.sheets[i+1:]...)

	switch {
	case len(w.sheets) == 0:
		w.active = -1
	case i < w.active:
		w.active--
	case w.active >= len(w.sheets):
		w.active = len(w.sheets) - 1
	}

	return nil
}

func (w *Workspace) SetActiveSheet(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexOf(id)
	if err != nil {
		return err
	}
	w.active = i
	return nil
}

func (w *Workspace) ActiveSheet() (domain.Sheet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.active < 0 {
		return domain.Sheet{}, fmt.Errorf("%w: nenhuma planilha ativa", ErrSheetNotFound)
	}
	return w.sheets[w.active].view(true), nil
}

// AddTab cria uma aba do tipo informado no final da planilha
func (w *Workspace) AddTab(sheetID, kind, title string) (domain.TabRef, error) {
	tab, err := w.registry.Create(kind, w.deps)
	if err != nil {
		return domain.TabRef{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexOf(sheetID)
	if err != nil {
		return domain.TabRef{}, err
	}
	sheet := w.sheets[i]

	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Tab %d: %s [%s]", len(sheet.refs)+1, kind, tab.ID())
	}

	ref := domain.TabRef{ID: tab.ID(), Kind: kind, Title: title}
	sheet.refs = append(sheet.refs, ref)
	sheet.tabs[tab.ID()] = tab

	return ref, nil
}

func (w *Workspace) RemoveTab(sheetID, tabID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexOf(sheetID)
	if err != nil {
		return err
	}
	sheet := w.sheets[i]

	if _, ok := sheet.tabs[tabID]; !ok {
		return fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	}

	delete(sheet.tabs, tabID)
	refs := make([]domain.TabRef, 0, len(sheet.refs))
	for _, r := range sheet.refs {
		if r.ID != tabID {
			refs = append(refs, r)
		}
	}
	sheet.refs = refs

	return nil
}

func (w *Workspace) GetTab(sheetID, tabID string) (Tab, domain.TabRef, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i, err := w.indexOf(sheetID)
	if err != nil {
		return nil, domain.TabRef{}, err
	}
	sheet := w.sheets[i]

	tab, ok := sheet.tabs[tabID]
	if !ok {
		return nil, domain.TabRef{}, fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	}
	for _, r := range sheet.refs {
		if r.ID == tabID {
			return tab, r, nil
		}
	}
	return nil, domain.TabRef{}, fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
}

// RenderTab executa uma passada de renderização fora do lock do workspace
func (w *Workspace) RenderTab(ctx context.Context, sheetID, tabID string, req RenderRequest) (*domain.TabView, error) {
	tab, _, err := w.GetTab(sheetID, tabID)
	if err != nil {
		return nil, err
	}
	return tab.Render(ctx, req)
}

// indexOf deve ser chamado com o lock adquirido
func (w *Workspace) indexOf(id string) (int, error) {
	for i, s := range w.sheets {
		if s.id == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
}
