package workspace

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/filtering"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/pkg/utils"
)

// Dependencies são os serviços compartilhados por todas as abas
type Dependencies struct {
	Datasets       uploading.DatasetManager
	Filter         filtering.DateFilter
	Aggregator     aggregating.Aggregator
	PreviewRows    int
	MonetaryColumn string
}

// RenderRequest contém o estado atual dos controles de uma aba
type RenderRequest struct {
	Selection   filtering.Selection `json:"selection"`
	Aggregation aggregating.Request `json:"aggregation"`
	PlotColumn  string              `json:"plot_column"`
}

// Tab é uma aba renderizável; cada passada é síncrona e não guarda estado entre chamadas
type Tab interface {
	ID() string
	Kind() string
	Render(ctx context.Context, req RenderRequest) (*domain.TabView, error)
}

// Constructor cria uma aba com o ID informado
type Constructor func(id string, deps Dependencies) Tab

// Registry mapeia o tipo da aba para o seu construtor
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

func (r *Registry) Register(kind string, c Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTabKind, kind)
	}
	r.constructors[kind] = c
	return nil
}

// Create instancia uma aba do tipo informado com um ID novo
func (r *Registry) Create(kind string, deps Dependencies) (Tab, error) {
	r.mu.RLock()
	c, ok := r.constructors[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTabKind, kind)
	}

	id, err := utils.GenerateShortID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID da aba: %w", err)
	}
	return c(id, deps), nil
}

// Kinds retorna os tipos registrados em ordem alfabética
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.constructors))
	for k := range r.constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// RegisterDefaultTabs registra as abas de upload, gráficos e análise
func RegisterDefaultTabs(r *Registry) error {
	defaults := map[string]Constructor{
		domain.TabKindUpload:   NewUploadTab,
		domain.TabKindPlots:    NewPlotsTab,
		domain.TabKindAnalysis: NewAnalysisTab,
	}
	for kind, c := range defaults {
		if err := r.Register(kind, c); err != nil {
			return err
		}
	}
	return nil
}
