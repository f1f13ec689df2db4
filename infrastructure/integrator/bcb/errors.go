package bcb

import (
	"errors"
	"fmt"
)

// Erros específicos da integração com o SGS do BCB
var (
	// ErrNoSeriesAvailable indica que nenhuma das séries solicitadas pôde
	// ser carregada; sem nenhum indicador macro a análise não prossegue.
	ErrNoSeriesAvailable = errors.New("nenhuma série do BCB pôde ser carregada, verifique o formato das datas")

	ErrEmptySeries       = errors.New("série vazia")
	ErrUnparseableSeries = errors.New("nenhum valor da série pôde ser interpretado")
)

// IndicatorFailure registra a falha de um indicador individual. Não aborta
// a busca dos demais; é reportada ao chamador como aviso.
type IndicatorFailure struct {
	Indicator string
	Code      int
	Err       error
}

func (f IndicatorFailure) Error() string {
	return fmt.Sprintf("indicador %s (série %d): %v", f.Indicator, f.Code, f.Err)
}

func (f IndicatorFailure) Unwrap() error {
	return f.Err
}
