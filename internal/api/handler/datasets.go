package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

const uploadField = "files"

// UploadDatasets recebe um ou mais arquivos CSV/XLSX no campo multipart "files"
func UploadDatasets(service uploading.DatasetManager, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UploadDatasets")

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Upload excede o limite configurado", map[string]int64{"limit_bytes": maxBytes})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido: "+err.Error(), nil)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		files := r.MultipartForm.File[uploadField]
		if len(files) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum arquivo enviado no campo \"files\"", nil)
			return
		}

		uploads := make([]uploading.Upload, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível abrir o arquivo "+fh.Filename, nil)
				return
			}
			content, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o arquivo "+fh.Filename, nil)
				return
			}
			uploads = append(uploads, uploading.Upload{Filename: fh.Filename, Content: content})
		}

		datasets, err := service.LoadMany(r.Context(), uploads)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao carregar arquivos")
			return
		}

		summaries := make([]domain.DatasetSummary, 0, len(datasets))
		for _, d := range datasets {
			summaries = append(summaries, d.Summary())
		}

		writeJSON(w, http.StatusCreated, summaries)
	})
}

func ListDatasets(service uploading.DatasetManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.List())
	})
}

func DeleteDataset(service uploading.DatasetManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - DeleteDataset")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do dataset é obrigatório", nil)
			return
		}

		if err := service.Remove(id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover dataset")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// DatasetColumns lista as colunas da tabela combinada, usadas pelos seletores do cliente
func DatasetColumns(service uploading.DatasetManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"columns": service.Columns()})
	})
}
