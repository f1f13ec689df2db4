package analyzing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func internalSeries() domain.Series {
	return domain.Series{
		Name: "inadimplencia_total",
		Points: []domain.MonthlyPoint{
			{Month: month(2023, 1), Value: 3.5},
			{Month: month(2023, 2), Value: 4.0},
			{Month: month(2023, 3), Value: 4.5},
		},
	}
}

func macroTable() *domain.Table {
	table := domain.NewTable()
	table.Months = []time.Time{month(2023, 2), month(2023, 3), month(2023, 4)}
	table.AddColumn("selic_mensal", []float64{13.75, 13.25, 12.75})
	return table
}

// assertTablesEqual compara duas tabelas tratando NaN como igual a NaN,
// o que reflect.DeepEqual não faz.
func assertTablesEqual(t *testing.T, expected, actual *domain.Table) {
	t.Helper()

	require.Equal(t, expected.Months, actual.Months)
	require.Equal(t, expected.ColumnNames, actual.ColumnNames)

	for _, name := range expected.ColumnNames {
		want := expected.Columns[name]
		got := actual.Columns[name]
		require.Len(t, got, len(want))

		for i := range want {
			if math.IsNaN(want[i]) {
				assert.True(t, math.IsNaN(got[i]), "coluna %s, linha %d", name, i)
				continue
			}
			assert.Equal(t, want[i], got[i], "coluna %s, linha %d", name, i)
		}
	}
}

func TestAlignSeries(t *testing.T) {
	unified := AlignSeries(internalSeries(), macroTable())

	// Left join: meses da base interna apenas; abril, só macro, é descartado
	require.Equal(t, []time.Time{month(2023, 1), month(2023, 2), month(2023, 3)}, unified.Months)
	assert.Equal(t, []string{"inadimplencia_total", "selic_mensal"}, unified.ColumnNames)

	target, ok := unified.Column("inadimplencia_total")
	require.True(t, ok)
	assert.Equal(t, []float64{3.5, 4.0, 4.5}, target)

	selic, ok := unified.Column("selic_mensal")
	require.True(t, ok)
	assert.True(t, math.IsNaN(selic[0]))
	assert.Equal(t, 13.75, selic[1])
	assert.Equal(t, 13.25, selic[2])
}

func TestAlignSeries_NilMacro(t *testing.T) {
	unified := AlignSeries(internalSeries(), nil)

	assert.Equal(t, []string{"inadimplencia_total"}, unified.ColumnNames)
	assert.Equal(t, 3, unified.NumRows())
}

func TestAlignSeries_Idempotent(t *testing.T) {
	internal := internalSeries()
	macro := macroTable()

	first := AlignSeries(internal, macro)
	second := AlignSeries(internal, macro)

	// Os insumos não são mutados: duas junções produzem o mesmo resultado
	assertTablesEqual(t, first, second)
	assert.Equal(t, []float64{13.75, 13.25, 12.75}, macro.Columns["selic_mensal"])
}

func TestMergeExtras(t *testing.T) {
	unified := AlignSeries(internalSeries(), macroTable())

	extras := []domain.Series{
		{
			// Já existe na tabela: deve ser ignorada
			Name: "selic_mensal",
			Points: []domain.MonthlyPoint{
				{Month: month(2023, 1), Value: 99},
			},
		},
		{
			// Nova: entra alinhada pelos meses da tabela
			Name: "ipca_mensal",
			Points: []domain.MonthlyPoint{
				{Month: month(2023, 1), Value: 0.5},
				{Month: month(2023, 3), Value: 0.7},
			},
		},
	}

	mergeExtras(unified, extras)

	assert.Equal(t, []string{"inadimplencia_total", "selic_mensal", "ipca_mensal"}, unified.ColumnNames)

	// A coluna existente não foi sobrescrita
	selic, _ := unified.Column("selic_mensal")
	assert.True(t, math.IsNaN(selic[0]))

	ipca, _ := unified.Column("ipca_mensal")
	assert.Equal(t, 0.5, ipca[0])
	assert.True(t, math.IsNaN(ipca[1]))
	assert.Equal(t, 0.7, ipca[2])
}

func TestCompleteRows(t *testing.T) {
	table := domain.NewTable()
	table.Months = []time.Time{month(2023, 1), month(2023, 2), month(2023, 3), month(2023, 4)}
	table.AddColumn("inadimplencia_total", []float64{3.5, 4.0, math.NaN(), 5.0})
	table.AddColumn("selic_mensal", []float64{13.75, math.NaN(), 13.25, 12.75})
	table.AddColumn("ipca_mensal", []float64{0.5, 0.6, 0.7, math.NaN()})

	out := completeRows(table, []string{"inadimplencia_total", "selic_mensal"})

	// Apenas janeiro e abril têm alvo e selic simultaneamente
	require.Equal(t, []time.Time{month(2023, 1), month(2023, 4)}, out.Months)
	assert.Equal(t, []float64{3.5, 5.0}, out.Columns["inadimplencia_total"])
	assert.Equal(t, []float64{13.75, 12.75}, out.Columns["selic_mensal"])

	// Colunas fora do critério são preservadas, inclusive com NaN
	ipca := out.Columns["ipca_mensal"]
	assert.Equal(t, 0.5, ipca[0])
	assert.True(t, math.IsNaN(ipca[1]))
}

func TestCompleteRows_MissingRequiredColumn(t *testing.T) {
	table := domain.NewTable()
	table.Months = []time.Time{month(2023, 1)}
	table.AddColumn("inadimplencia_total", []float64{3.5})

	out := completeRows(table, []string{"inadimplencia_total", "selic_mensal"})
	assert.Equal(t, 0, out.NumRows())
}
