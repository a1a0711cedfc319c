package uploading

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/log"
	"github.com/gzlb/dash/pkg/utils"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// Upload é um arquivo recebido ainda não convertido
type Upload struct {
	Filename string
	Content  []byte
}

//go:generate mockgen -source=service.go -destination=mocks/dataset_manager.go -package=mocks

// DatasetManager define a interface do repositório em memória de uploads
type DatasetManager interface {
	Load(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error)
	LoadMany(ctx context.Context, uploads []Upload) ([]*domain.Dataset, error)
	Combined() *domain.Table
	Columns() []string
	List() []domain.DatasetSummary
	Get(id string) (*domain.Dataset, error)
	Remove(id string) error
	PurgeOlderThan(cutoff time.Time) int
}

// Service guarda os datasets na ordem de upload. Os dados vivem apenas em memória.
type Service struct {
	parser spreadsheet.Parser
	now    func() time.Time

	mu       sync.RWMutex
	order    []string
	datasets map[string]*domain.Dataset
}

func NewService(parser spreadsheet.Parser) *Service {
	return &Service{
		parser:   parser,
		now:      time.Now,
		order:    make([]string, 0),
		datasets: make(map[string]*domain.Dataset),
	}
}

// WithClock substitui o relógio usado para marcar os uploads
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Load converte um arquivo e o adiciona ao final do repositório
func (s *Service) Load(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error) {
	dataset, err := s.parse(ctx, filename, r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.store(dataset)
	s.mu.Unlock()

	log.ForContext(ctx).WithFields(log.Fields{
		"dataset_id": dataset.ID,
		"filename":   filename,
		"rows":       dataset.Table.Len(),
	}).Info("uploading: dataset carregado")

	return dataset, nil
}

// LoadMany converte os arquivos em paralelo e só adiciona o lote se todos forem válidos.
// A ordem de armazenamento é a ordem recebida.
func (s *Service) LoadMany(ctx context.Context, uploads []Upload) ([]*domain.Dataset, error) {
	datasets := make([]*domain.Dataset, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, u := range uploads {
		i, u := i, u
		g.Go(func() error {
			dataset, err := s.parse(gctx, u.Filename, bytes.NewReader(u.Content))
			if err != nil {
				return err
			}
			datasets[i] = dataset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, d := range datasets {
		s.store(d)
	}
	s.mu.Unlock()

	log.ForContext(ctx).WithField("files", len(datasets)).Info("uploading: lote de datasets carregado")

	return datasets, nil
}

func (s *Service) parse(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}

	return &domain.Dataset{
		ID:         utils.GenerateUUID(),
		Filename:   filename,
		UploadedAt: s.now(),
		Table:      table,
	}, nil
}

// store deve ser chamado com o lock de escrita
func (s *Service) store(d *domain.Dataset) {
	s.datasets[d.ID] = d
	s.order = append(s.order, d.ID)
}

// Combined concatena todos os datasets na ordem de upload
func (s *Service) Combined() *domain.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]*domain.Table, 0, len(s.order))
	for _, id := range s.order {
		tables = append(tables, s.datasets[id].Table)
	}
	return domain.Concat(tables...)
}

// Columns retorna a união das colunas de todos os datasets
func (s *Service) Columns() []string {
	return s.Combined().Columns
}

func (s *Service) List() []domain.DatasetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.DatasetSummary, 0, len(s.order))
	for _, id := range s.order {
		summaries = append(summaries, s.datasets[id].Summary())
	}
	return summaries
}

func (s *Service) Get(id string) (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}
	return d, nil
}

func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}

	delete(s.datasets, id)
	s.order = removeID(s.order, id)
	return nil
}

// PurgeOlderThan remove os datasets enviados antes de cutoff e retorna quantos saíram
func (s *Service) PurgeOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(s.order))
	removed := 0
	for _, id := range s.order {
		if s.datasets[id].UploadedAt.Before(cutoff) {
			delete(s.datasets, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept

	return removed
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
