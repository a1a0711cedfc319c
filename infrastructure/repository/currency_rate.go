package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gzlb/dash/infrastructure/database/postgres"
	"github.com/gzlb/dash/internal/domain"
)

const currencyRatesTable = "currency_rates cr"

//go:generate mockgen -source=currency_rate.go -destination=mocks/currency_rate.go -package=mocks

type CurrencyRateRepository interface {
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)
	SaveOrUpdate(ctx context.Context, rates []domain.CurrencyRate) error
}

type currencyRateRepository struct {
	conn postgres.Queryer
}

func NewCurrencyRateRepository(conn postgres.Queryer) CurrencyRateRepository {
	return &currencyRateRepository{
		conn: conn,
	}
}

func (r *currencyRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	sqlQuery, args, err := squirrel.
		Select("cr.code, cr.rate").
		From(currencyRatesTable).
		OrderBy("cr.code ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.CurrencyRate, 0)
	for rows.Next() {
		var rate domain.CurrencyRate
		if err := rows.Scan(&rate.Code, &rate.Rate); err != nil {
			return nil, fmt.Errorf("erro ao escanear taxa de câmbio: %w", err)
		}
		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return rates, nil
}

func (r *currencyRateRepository) SaveOrUpdate(ctx context.Context, rates []domain.CurrencyRate) error {
	if len(rates) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("currency_rates").
		Columns("code", "rate")

	for _, rate := range rates {
		query = query.Values(domain.NormalizeCurrencyCode(rate.Code), rate.Rate)
	}

	sqlQuery, args, err := query.
		Suffix(`
			ON CONFLICT (code) DO UPDATE SET
				rate = EXCLUDED.rate,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
