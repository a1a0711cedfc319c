package workspace

import "errors"

// Erros do estado da aplicação (planilhas e abas)
var (
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrTabNotFound       = errors.New("tab not found")
	ErrUnknownTabKind    = errors.New("unknown tab kind")
	ErrDuplicateTabKind  = errors.New("tab kind already registered")
	ErrInvalidSheetName  = errors.New("sheet name cannot be empty")
	ErrInvalidPlotColumn = errors.New("plot column not found")
)
