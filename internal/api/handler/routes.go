package handler

import (
	"net/http"

	"github.com/gzlb/dash/internal/api/handler/router"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/internal/usecases/workspace"
)

func Healthcheck(datasets uploading.DatasetManager) []router.Route {
	var count func() int
	if datasets != nil {
		count = func() int { return len(datasets.List()) }
	}

	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(count),
		},
	}
}

func Datasets(service uploading.DatasetManager, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets",
			Method:  http.MethodPost,
			Handler: UploadDatasets(service, maxUploadBytes),
		},
		{
			Path:    "/v1/datasets",
			Method:  http.MethodGet,
			Handler: ListDatasets(service),
		},
		{
			Path:    "/v1/datasets/columns",
			Method:  http.MethodGet,
			Handler: DatasetColumns(service),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodDelete,
			Handler: DeleteDataset(service),
		},
	}
}

func Sheets(ws *workspace.Workspace) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sheets",
			Method:  http.MethodGet,
			Handler: ListSheets(ws),
		},
		{
			Path:    "/v1/sheets",
			Method:  http.MethodPost,
			Handler: CreateSheet(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id",
			Method:  http.MethodGet,
			Handler: GetSheet(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id",
			Method:  http.MethodPut,
			Handler: RenameSheet(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id",
			Method:  http.MethodDelete,
			Handler: DeleteSheet(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id/activate",
			Method:  http.MethodPost,
			Handler: ActivateSheet(ws),
		},
	}
}

func Tabs(ws *workspace.Workspace) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tabs/kinds",
			Method:  http.MethodGet,
			Handler: TabKinds(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id/tabs",
			Method:  http.MethodPost,
			Handler: AddTab(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id/tabs/:tab_id",
			Method:  http.MethodDelete,
			Handler: RemoveTab(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id/tabs/:tab_id/render",
			Method:  http.MethodPost,
			Handler: RenderTab(ws),
		},
		{
			Path:    "/v1/sheets/:sheet_id/tabs/:tab_id/export",
			Method:  http.MethodPost,
			Handler: ExportTab(ws),
		},
	}
}

func Currency(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/currency/rates",
			Method:  http.MethodGet,
			Handler: CurrencyRates(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
