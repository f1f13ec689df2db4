package bcb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb/bcbclient"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/domain"
	"github.com/econorealize/credit-insights-api/pkg/utils"
)

// MacroIntegrator busca séries macroeconômicas no SGS do BCB e as entrega
// agregadas em granularidade mensal, numa única tabela larga.
type MacroIntegrator interface {
	FetchMacroSeries(ctx context.Context, startDate, endDate string, seriesCodes map[string]int) (*FetchResult, error)
}

// FetchResult é o resultado da busca: a tabela mensal com as colunas dos
// indicadores que deram certo e o registro das falhas parciais.
type FetchResult struct {
	Table    *domain.Table
	Failures []IndicatorFailure
	Warnings []string
}

type SGSIntegrator struct {
	cfg    *config.Config
	Client bcbclient.Client
}

func New(cfg *config.Config, client bcbclient.Client) MacroIntegrator {
	return &SGSIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// fetchAttempt é uma etapa da estratégia de busca de um indicador: com
// período ou histórico completo filtrado localmente.
type fetchAttempt struct {
	description string
	scoped      bool
}

// A primeira tentativa que der certo vence; a falha de todas é registrada
// e o indicador é pulado.
var indicatorAttempts = []fetchAttempt{
	{description: "com período", scoped: true},
	{description: "histórico completo", scoped: false},
}

// FetchMacroSeries busca cada indicador de forma independente: a falha de
// um não aborta os demais. Retorna ErrNoSeriesAvailable apenas quando todos
// os indicadores falham. As datas aceitam formato ISO ou dd/mm/aaaa.
func (s *SGSIntegrator) FetchMacroSeries(ctx context.Context, startDate, endDate string, seriesCodes map[string]int) (*FetchResult, error) {
	if seriesCodes == nil {
		seriesCodes = s.cfg.BCB.SeriesCodes
	}

	start, err := utils.ToBCBDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}
	end, err := utils.ToBCBDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}

	// Ordem determinística de busca
	names := make([]string, 0, len(seriesCodes))
	for name := range seriesCodes {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &FetchResult{}
	var fetched []domain.Series

	for _, name := range names {
		code := seriesCodes[name]

		series, err := s.fetchIndicator(ctx, name, code, start, end)
		if err != nil {
			failure := IndicatorFailure{Indicator: name, Code: code, Err: err}
			result.Failures = append(result.Failures, failure)

			logrus.WithFields(logrus.Fields{
				"indicator":   name,
				"series_code": code,
			}).WithError(err).Warn("Não foi possível montar a série do indicador")
			continue
		}

		fetched = append(fetched, series)
		logrus.WithFields(logrus.Fields{
			"indicator": name,
			"months":    series.Len(),
		}).Info("Série agregada em granularidade mensal")
	}

	if len(fetched) == 0 {
		return nil, ErrNoSeriesAvailable
	}

	result.Table = mergeMonthlySeries(fetched)

	if rescaled := rescaleConfidenceIndex(result.Table, s.cfg.Analysis.ConfidenceColumn); rescaled {
		warning := fmt.Sprintf(
			"coluna %s reescalada para índice 0-100 (mediana < 2); heurística de melhor esforço",
			s.cfg.Analysis.ConfidenceColumn,
		)
		result.Warnings = append(result.Warnings, warning)
		logrus.Warn(warning)
	}

	return result, nil
}

// fetchIndicator executa a estratégia de tentativas para um indicador e
// devolve a série já agregada por mês.
func (s *SGSIntegrator) fetchIndicator(ctx context.Context, name string, code int, start, end string) (domain.Series, error) {
	var lastErr error

	for _, attempt := range indicatorAttempts {
		var params *bcbclient.RangeParams
		if attempt.scoped {
			params = &bcbclient.RangeParams{StartDate: start, EndDate: end}
		}

		observations, err := s.Client.FetchSeries(ctx, code, params)
		if err != nil {
			lastErr = err
			logrus.WithFields(logrus.Fields{
				"indicator": name,
				"attempt":   attempt.description,
			}).WithError(err).Debug("Tentativa de busca falhou")
			continue
		}

		if len(observations) == 0 {
			lastErr = ErrEmptySeries
			continue
		}

		points := parseObservations(observations)
		if !attempt.scoped {
			points = filterRange(points, start, end)
		}
		if len(points) == 0 {
			lastErr = ErrUnparseableSeries
			continue
		}

		return aggregateMonthly(name, points), nil
	}

	return domain.Series{}, lastErr
}

// parseObservations converte as linhas brutas do SGS: data dd/mm/aaaa e
// valor possivelmente com vírgula decimal. Linhas inválidas são descartadas.
func parseObservations(observations []bcbclient.SeriesObservation) []domain.MonthlyPoint {
	points := make([]domain.MonthlyPoint, 0, len(observations))

	for _, obs := range observations {
		date, err := time.Parse(utils.BRDateLayout, obs.Date)
		if err != nil {
			continue
		}

		value, err := utils.ParseDecimal(obs.Value)
		if err != nil {
			continue
		}

		points = append(points, domain.MonthlyPoint{Month: date, Value: value})
	}

	return points
}

// filterRange aplica localmente o recorte de período quando a busca foi
// pelo histórico completo.
func filterRange(points []domain.MonthlyPoint, start, end string) []domain.MonthlyPoint {
	startDt, errStart := time.Parse(utils.BRDateLayout, start)
	endDt, errEnd := time.Parse(utils.BRDateLayout, end)
	if errStart != nil || errEnd != nil {
		return points
	}

	filtered := make([]domain.MonthlyPoint, 0, len(points))
	for _, p := range points {
		if p.Month.Before(startDt) || p.Month.After(endDt) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// aggregateMonthly agrega observações em um valor por mês, pela média
// aritmética. Vale uniformemente para todos os indicadores: séries de
// nível diário (meta Selic, ICC) viram a média do mês e séries já mensais
// (IPCA, desemprego) não são alteradas por uma média de um único ponto.
func aggregateMonthly(name string, points []domain.MonthlyPoint) domain.Series {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)

	for _, p := range points {
		month := domain.CanonicalMonth(p.Month)
		sums[month] += p.Value
		counts[month]++
	}

	months := make([]time.Time, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := domain.Series{Name: name, Points: make([]domain.MonthlyPoint, 0, len(months))}
	for _, month := range months {
		series.Points = append(series.Points, domain.MonthlyPoint{
			Month: month,
			Value: sums[month] / float64(counts[month]),
		})
	}

	return series
}

// mergeMonthlySeries faz o outer join das séries por mês, ordena e mantém
// a última ocorrência em caso de mês duplicado.
func mergeMonthlySeries(series []domain.Series) *domain.Table {
	monthSet := make(map[time.Time]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			monthSet[p.Month] = struct{}{}
		}
	}

	months := make([]time.Time, 0, len(monthSet))
	for month := range monthSet {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	table := domain.NewTable()
	table.Months = months

	for _, s := range series {
		// Mapa por mês: uma duplicata sobrescreve a anterior (mantém a última)
		byMonth := make(map[time.Time]float64, len(s.Points))
		for _, p := range s.Points {
			byMonth[p.Month] = p.Value
		}

		col := make([]float64, len(months))
		for i, month := range months {
			if v, ok := byMonth[month]; ok {
				col[i] = v
			} else {
				col[i] = math.NaN()
			}
		}
		table.AddColumn(s.Name, col)
	}

	return table
}

// rescaleConfidenceIndex multiplica por 100 uma coluna de índice de
// confiança entregue como fração 0-1. Heurística: mediana abaixo de 2.
// Pode errar em índices legitimamente baixos; o chamador recebe um aviso.
func rescaleConfidenceIndex(table *domain.Table, column string) bool {
	values := table.ValidValues(column)
	if len(values) == 0 {
		return false
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	if median >= 2 {
		return false
	}

	col := table.Columns[column]
	for i := range col {
		col[i] *= 100
	}
	return true
}
