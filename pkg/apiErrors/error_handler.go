package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro expostos pela API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_002" // Token inválido
	ErrExpiredToken       = "AUTH_003" // Token expirado

	// Erros de validação de entrada (VAL)
	ErrInvalidRequest  = "VAL_001" // Requisição inválida
	ErrMissingColumns  = "VAL_002" // Colunas obrigatórias ausentes no upload
	ErrInvalidFormat   = "VAL_003" // Formato de arquivo ou data inválido
	ErrEmptyUpload     = "VAL_004" // Upload sem linhas aproveitáveis
	ErrUnknownVariable = "VAL_005" // Variável de cenário fora do modelo

	// Erros do pipeline (PIPE)
	ErrNoSeriesAvailable = "PIPE_001" // Nenhuma série macro pôde ser carregada
	ErrInsufficientData  = "PIPE_002" // Dados insuficientes para modelar

	// Erros do servidor (SRV)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Erro em serviço externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrExpiredToken:       http.StatusUnauthorized,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrMissingColumns:     http.StatusBadRequest,
	ErrInvalidFormat:      http.StatusBadRequest,
	ErrEmptyUpload:        http.StatusBadRequest,
	ErrUnknownVariable:    http.StatusBadRequest,
	ErrNoSeriesAvailable:  http.StatusBadGateway,
	ErrInsufficientData:   http.StatusUnprocessableEntity,
	ErrInternalServer:     http.StatusInternalServerError,
	ErrExternalService:    http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
