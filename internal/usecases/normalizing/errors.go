package normalizing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Erros específicos da normalização de uploads
var (
	ErrEmptyFile    = errors.New("arquivo vazio")
	ErrNoUsableRows = errors.New("nenhuma linha com data e valor válidos no arquivo")
)

// MissingColumnsError indica que colunas obrigatórias não foram encontradas
// após a normalização dos cabeçalhos.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("faltando colunas obrigatórias: %s", strings.Join(missing, ", "))
}

// NewMissingColumnsError cria o erro com o conjunto de colunas ausentes.
func NewMissingColumnsError(missing ...string) *MissingColumnsError {
	return &MissingColumnsError{Missing: missing}
}
