package aggregating

import (
	"errors"
	"fmt"
)

// Erros do pipeline de agregação
var (
	ErrMissingColumn      = errors.New("required column not found")
	ErrInvalidGroupColumn = errors.New("column cannot be used for grouping")
)

// AnalysisError é um erro com contexto adicional sobre a coluna envolvida
type AnalysisError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Column  string // Coluna envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError cria um novo AnalysisError para a coluna informada
func NewAnalysisError(err error, code string, column string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     err,
		Code:    code,
		Column:  column,
		Details: details,
	}
}
