package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gzlb/dash/internal/usecases/workspace"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

type sheetRequest struct {
	Name string `json:"name"`
}

func ListSheets(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ws.ListSheets())
	})
}

// CreateSheet cria uma planilha; sem nome, recebe "Sheet N"
func CreateSheet(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateSheet")

		var req sheetRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sheet, err := ws.AddSheet(req.Name)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar planilha")
			return
		}

		writeJSON(w, http.StatusCreated, sheet)
	})
}

func GetSheet(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sheet, err := ws.GetSheet(httprouter.ParamsFromContext(r.Context()).ByName("sheet_id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar planilha")
			return
		}

		writeJSON(w, http.StatusOK, sheet)
	})
}

func RenameSheet(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RenameSheet")

		var req sheetRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sheet, err := ws.RenameSheet(httprouter.ParamsFromContext(r.Context()).ByName("sheet_id"), req.Name)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao renomear planilha")
			return
		}

		writeJSON(w, http.StatusOK, sheet)
	})
}

func DeleteSheet(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - DeleteSheet")

		if err := ws.DeleteSheet(httprouter.ParamsFromContext(r.Context()).ByName("sheet_id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover planilha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ActivateSheet(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("sheet_id")
		if err := ws.SetActiveSheet(id); err != nil {
			writeServiceError(w, r, err, "Erro ao ativar planilha")
			return
		}

		sheet, err := ws.GetSheet(id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar planilha")
			return
		}

		writeJSON(w, http.StatusOK, sheet)
	})
}
