package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/usecases/workspace"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type addTabRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

func TabKinds(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"kinds": ws.Kinds()})
	})
}

func AddTab(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - AddTab")

		var req addTabRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		if req.Kind == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo da aba é obrigatório", map[string][]string{"kinds": ws.Kinds()})
			return
		}

		ref, err := ws.AddTab(httprouter.ParamsFromContext(r.Context()).ByName("sheet_id"), req.Kind, req.Title)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao adicionar aba")
			return
		}

		writeJSON(w, http.StatusCreated, ref)
	})
}

func RemoveTab(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RemoveTab")

		params := httprouter.ParamsFromContext(r.Context())
		if err := ws.RemoveTab(params.ByName("sheet_id"), params.ByName("tab_id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover aba")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// RenderTab executa uma passada de renderização com o estado dos controles enviado no corpo
func RenderTab(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req workspace.RenderRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		view, err := ws.RenderTab(r.Context(), params.ByName("sheet_id"), params.ByName("tab_id"), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao renderizar aba")
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

// ExportTab renderiza a aba e devolve a tabela resultante como XLSX
func ExportTab(ws *workspace.Workspace) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ExportTab")

		var req workspace.RenderRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		sheetID, tabID := params.ByName("sheet_id"), params.ByName("tab_id")

		_, ref, err := ws.GetTab(sheetID, tabID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar aba")
			return
		}

		view, err := ws.RenderTab(r.Context(), sheetID, tabID, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao renderizar aba")
			return
		}
		if view.Table == nil || len(view.Table.Columns) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "A aba não possui tabela para exportar", view.Notices)
			return
		}

		var buf bytes.Buffer
		if err := spreadsheet.ExportXLSX(&buf, view.Table, ref.Kind); err != nil {
			writeServiceError(w, r, err, "Erro ao gerar arquivo XLSX")
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-%s.xlsx", ref.Kind, ref.ID)))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar arquivo XLSX")
		}
	})
}
