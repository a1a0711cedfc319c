package handler

import (
	"net/http"
	"time"

	"github.com/gzlb/dash/pkg/log"
)

// HealthcheckHandler responde com o horário atual e o número de datasets em memória
func HealthcheckHandler(datasetCount func() int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}
		if datasetCount != nil {
			body["datasets"] = datasetCount()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.L.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
