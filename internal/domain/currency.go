package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ReferenceCurrency é a moeda para a qual todos os valores são normalizados
const ReferenceCurrency = "USD"

var ErrInvalidRate = errors.New("invalid currency rate")

// CurrencyRate é uma entrada da tabela de câmbio: valor na moeda * Rate = valor em USD
type CurrencyRate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// RateTable mapeia código de moeda para multiplicador. É estática durante a execução.
type RateTable map[string]float64

// NewRateTable valida e normaliza as taxas (códigos em maiúsculas, taxas positivas)
func NewRateTable(rates []CurrencyRate) (RateTable, error) {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		code := NormalizeCurrencyCode(r.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: código de moeda vazio", ErrInvalidRate)
		}
		if r.Rate <= 0 {
			return nil, fmt.Errorf("%w: taxa não positiva para %s", ErrInvalidRate, code)
		}
		table[code] = r.Rate
	}
	return table, nil
}

// NormalizeCurrencyCode padroniza o código para comparação
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Rate busca a taxa da moeda; ok=false quando a moeda não está na tabela
func (rt RateTable) Rate(code string) (float64, bool) {
	rate, ok := rt[NormalizeCurrencyCode(code)]
	return rate, ok
}

// Entries retorna as taxas ordenadas por código
func (rt RateTable) Entries() []CurrencyRate {
	codes := make([]string, 0, len(rt))
	for code := range rt {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]CurrencyRate, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, CurrencyRate{Code: code, Rate: rt[code]})
	}
	return entries
}
