package converting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gzlb/dash/infrastructure/repository"
	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/log"
)

var ErrInvalidRates = errors.New("invalid currency rate list")

// RateLoader define a interface de carga da tabela de câmbio
type RateLoader interface {
	LoadRates(ctx context.Context) (domain.RateTable, error)
}

type Service struct {
	repo     repository.CurrencyRateRepository
	fallback string
}

// NewService cria o carregador de taxas. repo pode ser nil quando não há banco
// configurado; nesse caso apenas a lista de taxas da configuração é usada.
func NewService(repo repository.CurrencyRateRepository, fallback string) RateLoader {
	return &Service{
		repo:     repo,
		fallback: fallback,
	}
}

// LoadRates busca as taxas no banco. Se a tabela estiver vazia, ela é populada com
// as taxas da configuração, que passam a ser a fonte da execução.
func (s *Service) LoadRates(ctx context.Context) (domain.RateTable, error) {
	configured, err := ParseRates(s.fallback)
	if err != nil {
		return nil, err
	}

	if s.repo == nil {
		log.L.WithField("rates", len(configured)).Info("converting: taxas carregadas da configuração")
		return domain.NewRateTable(configured)
	}

	stored, err := s.repo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar taxas de câmbio: %w", err)
	}

	if len(stored) > 0 {
		log.L.WithField("rates", len(stored)).Info("converting: taxas carregadas do banco")
		return domain.NewRateTable(stored)
	}

	table, err := domain.NewRateTable(configured)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveOrUpdate(ctx, table.Entries()); err != nil {
		return nil, fmt.Errorf("erro ao salvar taxas iniciais: %w", err)
	}

	log.L.WithField("rates", len(configured)).Info("converting: tabela de câmbio vazia, taxas da configuração gravadas")
	return table, nil
}

// ParseRates interpreta "USD:1.0,EUR:1.05". Entradas vazias são ignoradas e as
// taxas precisam ser decimais positivos.
func ParseRates(list string) ([]domain.CurrencyRate, error) {
	rates := make([]domain.CurrencyRate, 0)
	seen := make(map[string]struct{})

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code, value, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("%w: %q sem separador ':'", ErrInvalidRates, entry)
		}

		code = domain.NormalizeCurrencyCode(code)
		if code == "" {
			return nil, fmt.Errorf("%w: código vazio em %q", ErrInvalidRates, entry)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w: moeda %s repetida", ErrInvalidRates, code)
		}
		seen[code] = struct{}{}

		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: taxa inválida para %s: %v", ErrInvalidRates, code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: taxa de %s deve ser positiva", ErrInvalidRates, code)
		}

		rates = append(rates, domain.CurrencyRate{Code: code, Rate: rate.InexactFloat64()})
	}

	return rates, nil
}
