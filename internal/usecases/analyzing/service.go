package analyzing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/domain"
	"github.com/econorealize/credit-insights-api/internal/usecases/modeling"
	"github.com/econorealize/credit-insights-api/internal/usecases/normalizing"
	"github.com/econorealize/credit-insights-api/pkg/utils"
)

// RunOptions parametriza uma execução do pipeline.
type RunOptions struct {
	// Target é a variável perturbada nos cenários; vazio usa o default
	// da configuração.
	Target string
	// StartDate e EndDate substituem a janela derivada da base interna
	// (ISO ou dd/mm/aaaa). Vazios derivam: 5 anos antes do primeiro mês
	// até 1 ano após o último.
	StartDate string
	EndDate   string
}

// Result é o resultado completo de uma execução: a resposta da API e a
// tabela unificada para exportação.
type Result struct {
	Response *domain.AnalysisResponse
	Unified  *domain.Table
}

// Analyzer executa o pipeline completo: busca macro, junção, regressão,
// insight e cenários.
type Analyzer interface {
	Run(ctx context.Context, upload *normalizing.Upload, opts RunOptions) (*Result, error)
}

type Service struct {
	cfg             *config.Config
	macroIntegrator bcb.MacroIntegrator
}

func NewService(cfg *config.Config, macroIntegrator bcb.MacroIntegrator) Analyzer {
	return &Service{
		cfg:             cfg,
		macroIntegrator: macroIntegrator,
	}
}

// Run executa o pipeline de ponta a ponta sobre uma base interna já
// normalizada. Falhas de indicadores individuais degradam para avisos;
// apenas a ausência total de dados macro ou de variáveis utilizáveis
// aborta a execução.
func (s *Service) Run(ctx context.Context, upload *normalizing.Upload, opts RunOptions) (*Result, error) {
	internal := upload.Internal
	if internal.Len() == 0 {
		return nil, ErrNoInternalSeries
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, err
	}

	logger := logrus.WithField("run_id", runID)

	first, _ := internal.FirstMonth()
	last, _ := internal.LastMonth()

	startDate, endDate := s.fetchWindow(first, last, opts)

	logger.WithFields(logrus.Fields{
		"unique_months": internal.Len(),
		"start_date":    startDate,
		"end_date":      endDate,
	}).Info("Iniciando execução do pipeline")

	var warnings []string

	fetchResult, err := s.macroIntegrator.FetchMacroSeries(ctx, startDate, endDate, nil)
	if err != nil {
		return nil, err
	}
	for _, failure := range fetchResult.Failures {
		warnings = append(warnings, fmt.Sprintf("indicador indisponível: %s", failure.Error()))
	}
	warnings = append(warnings, fetchResult.Warnings...)

	// Base unificada: left join pela chave de mês; extras do upload só
	// preenchem indicadores que a busca não trouxe
	unified := AlignSeries(internal, fetchResult.Table)
	mergeExtras(unified, upload.Extras)

	targetColumn := s.cfg.Analysis.TargetColumn

	candidates := s.usableCandidates(unified)
	if len(candidates) == 0 {
		return nil, ErrInsufficientData
	}

	// Tabela de modelagem: apenas linhas completas em alvo e candidatas
	modelTable := completeRows(unified, append([]string{targetColumn}, candidates...))
	if modelTable.NumRows() < s.cfg.Analysis.MinObservations {
		warnings = append(warnings, fmt.Sprintf(
			"menos de %d observações úteis para OLS, os resultados podem ser instáveis",
			s.cfg.Analysis.MinObservations,
		))
	}

	model, err := modeling.FitOLS(modelTable, targetColumn, candidates)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"predictors":   model.Predictors,
		"observations": model.NObs,
	}).Info("Modelo ajustado")

	correlations := make(map[string]float64, len(candidates))
	for _, candidate := range candidates {
		if cc, ok := modeling.Correlation(modelTable, candidate, targetColumn); ok {
			correlations[candidate] = utils.RoundWithTwoDecimalPlace(cc)
		}
	}

	insight := modeling.GenerateInsight(model, s.cfg.Analysis.DefaultScenario)

	target := opts.Target
	if target == "" {
		target = s.defaultScenarioTarget(candidates)
	}

	scenarios, err := modeling.GenerateScenarios(model, modelTable, target)
	if err != nil {
		return nil, err
	}

	response := &domain.AnalysisResponse{
		RunID:        runID,
		Period:       domain.AnalysisPeriod{Start: first, End: last},
		UniqueMonths: internal.Len(),
		MacroColumns: macroColumns(unified, targetColumn),
		Model:        model.Report(),
		Correlations: correlations,
		Insight:      insight,
		Target:       target,
		Scenarios:    scenarios,
		Warnings:     warnings,
	}

	return &Result{Response: response, Unified: unified}, nil
}

// fetchWindow deriva a janela de busca no BCB: 5 anos antes do primeiro
// mês da base interna até 1 ano após o último, salvo override explícito.
func (s *Service) fetchWindow(first, last time.Time, opts RunOptions) (string, string) {
	startDate := first.AddDate(-5, 0, 0).Format(utils.ISODateLayout)
	endDate := last.AddDate(1, 0, 0).Format(utils.ISODateLayout)

	if opts.StartDate != "" {
		startDate = opts.StartDate
	}
	if opts.EndDate != "" {
		endDate = opts.EndDate
	}

	return startDate, endDate
}

// usableCandidates filtra as variáveis macro candidatas: presentes na
// tabela, com mais de duas observações não ausentes e mais de um valor
// distinto. Variável constante não chega à regressão.
func (s *Service) usableCandidates(table *domain.Table) []string {
	var usable []string
	for _, candidate := range s.cfg.RegressorCandidates() {
		valid := table.ValidValues(candidate)
		if len(valid) <= 2 {
			continue
		}
		if countDistinct(valid) <= 1 {
			continue
		}
		usable = append(usable, candidate)
	}
	return usable
}

// defaultScenarioTarget usa o default configurado quando ele sobreviveu
// ao filtro, senão a primeira candidata utilizável.
func (s *Service) defaultScenarioTarget(candidates []string) string {
	for _, c := range candidates {
		if c == s.cfg.Analysis.DefaultScenario {
			return c
		}
	}
	return candidates[0]
}

func macroColumns(table *domain.Table, targetColumn string) []string {
	var out []string
	for _, name := range table.ColumnNames {
		if name == targetColumn {
			continue
		}
		out = append(out, name)
	}
	return out
}

func countDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
