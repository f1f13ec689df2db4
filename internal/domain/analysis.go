package domain

import "time"

// ScenarioRow é uma linha de projeção de cenário: o rótulo, o valor
// aplicado à variável alvo e a inadimplência prevista pelo modelo.
type ScenarioRow struct {
	Label       string  `json:"cenario"`
	TargetValue float64 `json:"valor_variavel"`
	Predicted   float64 `json:"inadimplencia_prevista"`
}

// AnalysisPeriod delimita a janela de meses coberta pela análise.
type AnalysisPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ModelReport resume o modelo ajustado para a resposta da API.
type ModelReport struct {
	Predictors   []string           `json:"predictors"`
	Coefficients map[string]float64 `json:"coefficients"`
	RSquared     float64            `json:"r_squared"`
	Observations int                `json:"observations"`
	FittedAt     time.Time          `json:"fitted_at"`
	Summary      string             `json:"summary"`
}

// AnalysisResponse é o resultado completo de uma execução do pipeline.
type AnalysisResponse struct {
	RunID        string             `json:"run_id"`
	Period       AnalysisPeriod     `json:"period"`
	UniqueMonths int                `json:"unique_months"`
	MacroColumns []string           `json:"macro_columns"`
	Model        *ModelReport       `json:"model"`
	Correlations map[string]float64 `json:"correlations"`
	Insight      string             `json:"insight"`
	Target       string             `json:"target"`
	Scenarios    []ScenarioRow      `json:"scenarios"`
	Warnings     []string           `json:"warnings,omitempty"`
}
