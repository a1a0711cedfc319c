package aggregating

import (
	"github.com/gzlb/dash/internal/domain"
)

// Aggregator define a interface do agrupamento com soma e conversão de moeda
type Aggregator interface {
	// Aggregate converte (opcionalmente), agrupa e soma a coluna monetária
	Aggregate(table *domain.Table, req Request) (*Result, error)

	// GroupCandidates lista as colunas que podem ser usadas como chave de agrupamento
	GroupCandidates(table *domain.Table, monetaryColumn string) []string

	// ConvertCurrency multiplica a coluna monetária pela taxa da moeda de cada linha
	ConvertCurrency(table *domain.Table, monetaryColumn string) (*domain.Table, []string)

	// Rates retorna a tabela de taxas em uso
	Rates() domain.RateTable
}
