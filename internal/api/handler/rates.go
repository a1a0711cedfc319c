package handler

import (
	"net/http"

	"github.com/gzlb/dash/internal/usecases/aggregating"
)

// CurrencyRates lista as taxas de conversão carregadas na inicialização
func CurrencyRates(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"rates": service.Rates().Entries()})
	})
}
