package handler

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/filtering"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/internal/usecases/workspace"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}

// decodeBody aceita corpo vazio e mantém o valor zero em dst
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeServiceError traduz os erros dos serviços para o formato padronizado da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var analysisErr *aggregating.AnalysisError
	if errors.As(err, &analysisErr) {
		var details any
		if analysisErr.Column != "" {
			details = map[string]string{"column": analysisErr.Column}
		}
		apiErrors.WriteError(w, analysisErr.Code, analysisErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, filtering.ErrUnknownLabel):
		apiErrors.WriteError(w, apiErrors.ErrUnknownLabel, err.Error(), nil)
	case errors.Is(err, workspace.ErrSheetNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSheetNotFound, "Planilha não encontrada", nil)
	case errors.Is(err, workspace.ErrTabNotFound):
		apiErrors.WriteError(w, apiErrors.ErrTabNotFound, "Aba não encontrada", nil)
	case errors.Is(err, workspace.ErrUnknownTabKind):
		apiErrors.WriteError(w, apiErrors.ErrUnknownTabKind, err.Error(), nil)
	case errors.Is(err, workspace.ErrInvalidSheetName):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da planilha é obrigatório", nil)
	case errors.Is(err, workspace.ErrInvalidPlotColumn):
		apiErrors.WriteError(w, apiErrors.ErrMissingColumn, err.Error(), nil)
	case errors.Is(err, uploading.ErrDatasetNotFound):
		apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "Dataset não encontrado", nil)
	case errors.Is(err, spreadsheet.ErrUnsupportedFileType):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedFile, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrEmptyFile), errors.Is(err, spreadsheet.ErrMalformedFile):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
