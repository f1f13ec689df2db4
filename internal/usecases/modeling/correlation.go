package modeling

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

// Correlation calcula a correlação de Pearson entre duas colunas sobre os
// pares completos. Retorna false quando há menos de dois pares ou alguma
// das colunas é constante no recorte.
func Correlation(table *domain.Table, colA, colB string) (float64, bool) {
	a, okA := table.Column(colA)
	b, okB := table.Column(colB)
	if !okA || !okB {
		return 0, false
	}

	var xs, ys []float64
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}

	if len(xs) < 2 {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0, false
	}

	return stat.Correlation(xs, ys, nil), true
}

// RollingCorrelation calcula a correlação em janela móvel entre duas
// colunas. As primeiras window−1 posições e janelas sem pares suficientes
// saem como NaN.
func RollingCorrelation(table *domain.Table, colA, colB string, window int) []float64 {
	a, okA := table.Column(colA)
	b, okB := table.Column(colB)
	n := table.NumRows()

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if !okA || !okB || window < 2 {
		return out
	}

	for i := window - 1; i < n; i++ {
		var xs, ys []float64
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(a[j]) || math.IsNaN(b[j]) {
				continue
			}
			xs = append(xs, a[j])
			ys = append(ys, b[j])
		}

		if len(xs) < 2 || stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
			continue
		}
		out[i] = stat.Correlation(xs, ys, nil)
	}

	return out
}
