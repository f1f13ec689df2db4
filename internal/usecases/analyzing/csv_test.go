package analyzing

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

func TestWriteUnifiedCSV(t *testing.T) {
	table := domain.NewTable()
	table.Months = []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	table.AddColumn("inadimplencia_total", []float64{3.5, 4.0})
	table.AddColumn("selic_mensal", []float64{math.NaN(), 13.75})

	var buf bytes.Buffer
	require.NoError(t, WriteUnifiedCSV(&buf, table))

	expected := "data,inadimplencia_total,selic_mensal\n" +
		"2023-01-01,3.5,\n" +
		"2023-02-01,4,13.75\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteScenariosCSV(t *testing.T) {
	scenarios := []domain.ScenarioRow{
		{Label: "Queda de 2 p.p.", TargetValue: 8, Predicted: 13},
		{Label: "Estável", TargetValue: 10, Predicted: 16},
		{Label: "Alta de 2 p.p.", TargetValue: 12, Predicted: 19},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScenariosCSV(&buf, "selic_mensal", scenarios))

	expected := "cenario,selic_mensal,inadimplencia_prevista\n" +
		"Queda de 2 p.p.,8.00,13.00\n" +
		"Estável,10.00,16.00\n" +
		"Alta de 2 p.p.,12.00,19.00\n"
	assert.Equal(t, expected, buf.String())
}
