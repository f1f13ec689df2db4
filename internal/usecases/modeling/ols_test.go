package modeling

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

func buildTable(months int, columns map[string][]float64) *domain.Table {
	table := domain.NewTable()
	table.Months = make([]time.Time, months)
	for i := 0; i < months; i++ {
		table.Months[i] = time.Date(2023, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
	}
	for name, values := range columns {
		table.AddColumn(name, values)
	}
	return table
}

func TestFitOLS_PerfectLinearFit(t *testing.T) {
	// y = 2x + 1, sem ruído: os coeficientes devem ser recuperados exatamente
	table := buildTable(6, map[string][]float64{
		"inadimplencia_total": {3, 5, 7, 9, 11, 13},
		"selic_mensal":        {1, 2, 3, 4, 5, 6},
	})

	model, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
	require.NoError(t, err)

	assert.Equal(t, []string{ConstName, "selic_mensal"}, model.Predictors)
	assert.InDelta(t, 1.0, model.Coefficients[ConstName], 1e-9)
	assert.InDelta(t, 2.0, model.Coefficients["selic_mensal"], 1e-9)
	assert.InDelta(t, 1.0, model.RSquared, 1e-9)
	assert.Equal(t, 6, model.NObs)
	assert.False(t, model.FittedAt.IsZero())
}

func TestFitOLS_MultiplePredictors(t *testing.T) {
	// y = 1 + 2a - 3b
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	b := []float64{2, 1, 4, 3, 6, 5, 8, 7}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = 1 + 2*a[i] - 3*b[i]
	}

	table := buildTable(8, map[string][]float64{
		"inadimplencia_total": y,
		"selic_mensal":        a,
		"ipca_mensal":         b,
	})

	model, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal", "ipca_mensal"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, model.Coefficients[ConstName], 1e-9)
	assert.InDelta(t, 2.0, model.Coefficients["selic_mensal"], 1e-9)
	assert.InDelta(t, -3.0, model.Coefficients["ipca_mensal"], 1e-9)
	assert.InDelta(t, 1.0, model.RSquared, 1e-9)
}

func TestFitOLS_DropsIncompleteRows(t *testing.T) {
	table := buildTable(6, map[string][]float64{
		"inadimplencia_total": {3, 5, math.NaN(), 9, 11, 13},
		"selic_mensal":        {1, 2, 3, math.NaN(), 5, 6},
	})

	model, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
	require.NoError(t, err)

	// Duas linhas incompletas ficam de fora do ajuste
	assert.Equal(t, 4, model.NObs)
	assert.InDelta(t, 2.0, model.Coefficients["selic_mensal"], 1e-9)
}

func TestFitOLS_Errors(t *testing.T) {
	t.Run("Coluna ausente da tabela", func(t *testing.T) {
		table := buildTable(3, map[string][]float64{
			"inadimplencia_total": {3, 5, 7},
		})

		_, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
		assert.Error(t, err)
	})

	t.Run("Sem observações completas", func(t *testing.T) {
		table := buildTable(3, map[string][]float64{
			"inadimplencia_total": {math.NaN(), math.NaN(), math.NaN()},
			"selic_mensal":        {1, 2, 3},
		})

		_, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
		assert.ErrorIs(t, err, ErrNoObservations)
	})

	t.Run("Menos linhas do que coeficientes", func(t *testing.T) {
		table := buildTable(1, map[string][]float64{
			"inadimplencia_total": {3},
			"selic_mensal":        {1},
		})

		_, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
		assert.ErrorIs(t, err, ErrTooFewRows)
	})
}

func TestFitOLS_ConstantTargetHasZeroRSquared(t *testing.T) {
	table := buildTable(4, map[string][]float64{
		"inadimplencia_total": {5, 5, 5, 5},
		"selic_mensal":        {1, 2, 3, 4},
	})

	model, err := FitOLS(table, "inadimplencia_total", []string{"selic_mensal"})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, model.Coefficients["selic_mensal"], 1e-9)
	assert.Equal(t, 0.0, model.RSquared)
}

func TestFittedModel_Predict(t *testing.T) {
	model := &FittedModel{
		Target:     "inadimplencia_total",
		Predictors: []string{ConstName, "selic_mensal"},
		Coefficients: map[string]float64{
			ConstName:      1.0,
			"selic_mensal": 2.0,
		},
	}

	prediction, err := model.Predict(map[string]float64{
		ConstName:      1.0,
		"selic_mensal": 10.0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 21.0, prediction, 1e-9)

	// Linha sem o termo constante deve falhar
	_, err = model.Predict(map[string]float64{"selic_mensal": 10.0})
	assert.ErrorIs(t, err, ErrMissingRowValue)
}

func TestFittedModel_Summary(t *testing.T) {
	model := &FittedModel{
		Target:     "inadimplencia_total",
		Predictors: []string{ConstName, "selic_mensal"},
		Coefficients: map[string]float64{
			ConstName:      1.0,
			"selic_mensal": 2.0,
		},
		RSquared: 0.95,
		NObs:     12,
	}

	summary := model.Summary()
	assert.Contains(t, summary, "inadimplencia_total")
	assert.Contains(t, summary, "selic_mensal")
	assert.Contains(t, summary, "const")
	assert.Contains(t, summary, "0.9500")
}

func TestFittedModel_Report(t *testing.T) {
	model := &FittedModel{
		Target:     "inadimplencia_total",
		Predictors: []string{ConstName, "selic_mensal"},
		Coefficients: map[string]float64{
			ConstName:      1.0,
			"selic_mensal": 2.0,
		},
		RSquared: 0.95,
		NObs:     12,
	}

	report := model.Report()
	assert.Equal(t, model.Predictors, report.Predictors)
	assert.Equal(t, 0.95, report.RSquared)
	assert.Equal(t, 12, report.Observations)

	// O relatório é uma cópia: mutar não afeta o modelo
	report.Coefficients["selic_mensal"] = 0
	assert.Equal(t, 2.0, model.Coefficients["selic_mensal"])
}
