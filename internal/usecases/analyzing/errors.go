package analyzing

import "errors"

// Erros específicos do pipeline de análise
var (
	// ErrInsufficientData indica que, após o filtro de candidatas, não
	// restou nenhuma variável utilizável para a regressão.
	ErrInsufficientData = errors.New("poucos dados para modelar, tente ampliar o período da base interna")

	ErrNoInternalSeries = errors.New("base interna vazia após a normalização")
)
