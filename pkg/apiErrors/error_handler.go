package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro padronizados da API
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrMissingColumn       = "VAL_004" // Coluna obrigatória ausente na tabela
	ErrInvalidGroupColumn  = "VAL_005" // Coluna não pode ser usada para agrupar
	ErrUnknownLabel        = "VAL_006" // Rótulo de trimestre ou mês desconhecido
	ErrUnsupportedFile     = "VAL_007" // Tipo de arquivo não suportado
	ErrPayloadTooLarge     = "VAL_008" // Upload acima do limite configurado
	ErrMethodNotAllowed    = "VAL_009" // Método HTTP não suportado pela rota

	// Erros de recurso (4000-4999)
	ErrSheetNotFound   = "RES_001" // Planilha não encontrada
	ErrTabNotFound     = "RES_002" // Aba não encontrada
	ErrDatasetNotFound = "RES_003" // Dataset não encontrado
	ErrUnknownTabKind  = "RES_004" // Tipo de aba não registrado
	ErrSyncRunning     = "RES_005" // Job já em execução
	ErrRouteNotFound   = "RES_006" // Rota inexistente

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrMissingColumn:       http.StatusBadRequest,
	ErrInvalidGroupColumn:  http.StatusBadRequest,
	ErrUnknownLabel:        http.StatusBadRequest,
	ErrUnsupportedFile:     http.StatusUnsupportedMediaType,
	ErrPayloadTooLarge:     http.StatusRequestEntityTooLarge,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrSheetNotFound:       http.StatusNotFound,
	ErrTabNotFound:         http.StatusNotFound,
	ErrDatasetNotFound:     http.StatusNotFound,
	ErrUnknownTabKind:      http.StatusBadRequest,
	ErrSyncRunning:         http.StatusConflict,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrCommunication:       http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
