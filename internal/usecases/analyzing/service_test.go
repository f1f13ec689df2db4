package analyzing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb"
	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb/mocks"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/domain"
	"github.com/econorealize/credit-insights-api/internal/usecases/modeling"
	"github.com/econorealize/credit-insights-api/internal/usecases/normalizing"
)

func newAnalysisConfig() *config.Config {
	return &config.Config{
		Analysis: config.Analysis{
			TargetColumn:     "inadimplencia_total",
			ConfidenceColumn: config.IndicatorConfianca,
			DefaultScenario:  config.IndicatorSelic,
			MinObservations:  8,
		},
	}
}

// linearUpload monta uma base interna de seis meses com a relação exata
// y = 2x + 1 sobre a selic usada em linearMacroTable.
func linearUpload() *normalizing.Upload {
	points := make([]domain.MonthlyPoint, 6)
	for i := range points {
		points[i] = domain.MonthlyPoint{
			Month: month(2023, 1+time.Month(i)),
			Value: 2*float64(i+1) + 1,
		}
	}
	return &normalizing.Upload{
		Internal: domain.Series{Name: "inadimplencia_total", Points: points},
	}
}

func linearMacroTable() *domain.Table {
	table := domain.NewTable()
	table.Months = make([]time.Time, 6)
	selic := make([]float64, 6)
	for i := range table.Months {
		table.Months[i] = month(2023, 1+time.Month(i))
		selic[i] = float64(i + 1)
	}
	table.AddColumn(config.IndicatorSelic, selic)
	return table
}

func TestRun_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), "2018-01-01", "2024-06-01", nil).
		Return(&bcb.FetchResult{Table: linearMacroTable()}, nil)

	result, err := service.Run(context.Background(), linearUpload(), RunOptions{})
	require.NoError(t, err)

	response := result.Response
	assert.NotEmpty(t, response.RunID)
	assert.Equal(t, 6, response.UniqueMonths)
	assert.Equal(t, month(2023, 1), response.Period.Start)
	assert.Equal(t, month(2023, 6), response.Period.End)
	assert.Equal(t, []string{config.IndicatorSelic}, response.MacroColumns)

	// Relação exata y = 2x + 1 deve ser recuperada
	require.NotNil(t, response.Model)
	assert.InDelta(t, 1.0, response.Model.Coefficients[modeling.ConstName], 1e-9)
	assert.InDelta(t, 2.0, response.Model.Coefficients[config.IndicatorSelic], 1e-9)
	assert.InDelta(t, 1.0, response.Model.RSquared, 1e-9)
	assert.Equal(t, 6, response.Model.Observations)

	assert.Equal(t, 1.0, response.Correlations[config.IndicatorSelic])

	// Default de cenário configurado sobreviveu ao filtro
	assert.Equal(t, config.IndicatorSelic, response.Target)
	require.Len(t, response.Scenarios, 3)
	assert.Equal(t, "Queda de 2 p.p.", response.Scenarios[0].Label)
	assert.Equal(t, 4.0, response.Scenarios[0].TargetValue)
	assert.Equal(t, 9.0, response.Scenarios[0].Predicted)
	assert.Equal(t, 8.0, response.Scenarios[2].TargetValue)
	assert.Equal(t, 17.0, response.Scenarios[2].Predicted)

	assert.Contains(t, response.Insight, "selic mensal")
	assert.Contains(t, response.Insight, "aumentar")

	// Seis observações, abaixo do mínimo configurado de oito
	require.Len(t, response.Warnings, 1)
	assert.Contains(t, response.Warnings[0], "menos de 8")

	require.NotNil(t, result.Unified)
	assert.Equal(t, 6, result.Unified.NumRows())
}

func TestRun_WindowOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), "2020-06-01", "2024-12-31", nil).
		Return(&bcb.FetchResult{Table: linearMacroTable()}, nil)

	_, err := service.Run(context.Background(), linearUpload(), RunOptions{
		StartDate: "2020-06-01",
		EndDate:   "2024-12-31",
	})
	require.NoError(t, err)
}

func TestRun_ScenarioTargetOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	macro := linearMacroTable()
	macro.AddColumn(config.IndicatorIPCA, []float64{0.5, 0.3, 0.7, 0.4, 0.6, 0.2})

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(&bcb.FetchResult{Table: macro}, nil)

	result, err := service.Run(context.Background(), linearUpload(), RunOptions{
		Target: config.IndicatorIPCA,
	})
	require.NoError(t, err)

	assert.Equal(t, config.IndicatorIPCA, result.Response.Target)
}

func TestRun_UnknownScenarioTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(&bcb.FetchResult{Table: linearMacroTable()}, nil)

	_, err := service.Run(context.Background(), linearUpload(), RunOptions{
		Target: "pib_trimestral",
	})

	var unknownErr *modeling.UnknownPredictorError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "pib_trimestral", unknownErr.Predictor)
}

func TestRun_FailuresBecomeWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	fetchResult := &bcb.FetchResult{
		Table: linearMacroTable(),
		Failures: []bcb.IndicatorFailure{
			{Indicator: config.IndicatorIPCA, Code: 433, Err: assert.AnError},
		},
		Warnings: []string{"coluna confianca_consumidor reescalada"},
	}

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(fetchResult, nil)

	result, err := service.Run(context.Background(), linearUpload(), RunOptions{})
	require.NoError(t, err)

	// Falha do IPCA, aviso do reescalonamento e aviso de poucas observações
	require.Len(t, result.Response.Warnings, 3)
	assert.Contains(t, result.Response.Warnings[0], "indicador indisponível")
	assert.Contains(t, result.Response.Warnings[0], config.IndicatorIPCA)
	assert.Contains(t, result.Response.Warnings[1], "reescalada")
}

func TestRun_MacroFetchErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(nil, bcb.ErrNoSeriesAvailable)

	_, err := service.Run(context.Background(), linearUpload(), RunOptions{})
	assert.ErrorIs(t, err, bcb.ErrNoSeriesAvailable)
}

func TestRun_ConstantMacroColumnIsFiltered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	macro := linearMacroTable()
	macro.Columns[config.IndicatorSelic] = []float64{5, 5, 5, 5, 5, 5}

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(&bcb.FetchResult{Table: macro}, nil)

	_, err := service.Run(context.Background(), linearUpload(), RunOptions{})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRun_EmptyInternalSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	upload := &normalizing.Upload{Internal: domain.Series{Name: "inadimplencia_total"}}

	_, err := service.Run(context.Background(), upload, RunOptions{})
	assert.ErrorIs(t, err, ErrNoInternalSeries)
}

func TestRun_UploadExtrasFillMissingIndicators(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockMacroIntegrator(ctrl)
	service := NewService(newAnalysisConfig(), mockIntegrator)

	upload := linearUpload()
	upload.Extras = []domain.Series{
		{
			Name: config.IndicatorIPCA,
			Points: []domain.MonthlyPoint{
				{Month: month(2023, 1), Value: 0.5},
				{Month: month(2023, 2), Value: 0.3},
				{Month: month(2023, 3), Value: 0.7},
				{Month: month(2023, 4), Value: 0.4},
			},
		},
	}

	mockIntegrator.EXPECT().
		FetchMacroSeries(gomock.Any(), gomock.Any(), gomock.Any(), nil).
		Return(&bcb.FetchResult{Table: linearMacroTable()}, nil)

	result, err := service.Run(context.Background(), upload, RunOptions{})
	require.NoError(t, err)

	// O IPCA do upload entra na tabela unificada e vira candidata do modelo
	assert.True(t, result.Unified.HasColumn(config.IndicatorIPCA))
	assert.Contains(t, result.Response.Model.Predictors, config.IndicatorIPCA)
}
