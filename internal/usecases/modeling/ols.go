package modeling

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

// FitOLS ajusta mínimos quadrados ordinários da coluna alvo sobre as
// variáveis dadas, com intercepto explícito prependido. Linhas com
// qualquer valor ausente entre alvo e variáveis são descartadas antes do
// ajuste. O chamador é responsável por pré-filtrar variáveis constantes
// ou quase vazias; aqui não há tamanho mínimo de amostra.
func FitOLS(table *domain.Table, target string, predictors []string) (*FittedModel, error) {
	cols := append([]string{target}, predictors...)
	for _, name := range cols {
		if !table.HasColumn(name) {
			return nil, errors.Errorf("coluna %q ausente da tabela de modelagem", name)
		}
	}

	// Apenas linhas completas entram no ajuste
	var y []float64
	var xRows [][]float64
	for i := range table.Months {
		complete := true
		for _, name := range cols {
			if math.IsNaN(table.Columns[name][i]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}

		y = append(y, table.Columns[target][i])
		row := make([]float64, len(predictors))
		for j, name := range predictors {
			row[j] = table.Columns[name][i]
		}
		xRows = append(xRows, row)
	}

	n := len(y)
	p := len(predictors) + 1
	if n == 0 {
		return nil, ErrNoObservations
	}
	if n < p {
		return nil, ErrTooFewRows
	}

	X := mat.NewDense(n, p, nil)
	for i, row := range xRows {
		X.Set(i, 0, 1.0)
		for j, v := range row {
			X.Set(i, j+1, v)
		}
	}
	yVec := mat.NewVecDense(n, y)

	// Mínimos quadrados via QR
	var beta mat.VecDense
	if err := beta.SolveVec(X, yVec); err != nil {
		return nil, errors.Wrap(ErrSingularSystem, err.Error())
	}

	names := append([]string{ConstName}, predictors...)
	coefficients := make(map[string]float64, len(names))
	for i, name := range names {
		coefficients[name] = beta.AtVec(i)
	}

	model := &FittedModel{
		Target:       target,
		Predictors:   names,
		Coefficients: coefficients,
		NObs:         n,
		FittedAt:     time.Now().UTC(),
	}
	model.RSquared = rSquared(X, yVec, &beta)

	return model, nil
}

// rSquared é a fração da variância explicada: 1 − SQR/SQT. Alvo de
// variância zero resulta em 0.
func rSquared(X *mat.Dense, y *mat.VecDense, beta *mat.VecDense) float64 {
	n, _ := X.Dims()

	var fitted mat.VecDense
	fitted.MulVec(X, beta)

	mean := 0.0
	for i := 0; i < n; i++ {
		mean += y.AtVec(i)
	}
	mean /= float64(n)

	var ssr, sst float64
	for i := 0; i < n; i++ {
		residual := y.AtVec(i) - fitted.AtVec(i)
		ssr += residual * residual

		centered := y.AtVec(i) - mean
		sst += centered * centered
	}

	if sst == 0 {
		return 0
	}
	return 1 - ssr/sst
}
