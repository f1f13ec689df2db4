package modeling

import (
	"errors"
	"fmt"
	"strings"
)

// Erros específicos do ajuste e uso do modelo
var (
	ErrNoObservations  = errors.New("sem observações completas para ajustar o modelo")
	ErrTooFewRows      = errors.New("menos observações do que coeficientes a estimar")
	ErrSingularSystem  = errors.New("sistema de regressão singular")
	ErrMissingRowValue = errors.New("linha de predição sem valor para variável do modelo")
)

// UnknownPredictorError indica que a variável pedida não faz parte do
// modelo ajustado.
type UnknownPredictorError struct {
	Predictor string
	Known     []string
}

func (e *UnknownPredictorError) Error() string {
	return fmt.Sprintf(
		"variável %q não está no modelo; variáveis do modelo: %s",
		e.Predictor, strings.Join(e.Known, ", "),
	)
}
