package modeling

import (
	"gonum.org/v1/gonum/stat"

	"github.com/econorealize/credit-insights-api/internal/domain"
	"github.com/econorealize/credit-insights-api/pkg/utils"
)

// Cenários fixos: perturbações de −2, 0 e +2 pontos sobre o valor base da
// variável alvo, sempre nesta ordem.
var scenarioOffsets = []struct {
	label  string
	offset float64
}{
	{label: "Queda de 2 p.p.", offset: -2},
	{label: "Estável", offset: 0},
	{label: "Alta de 2 p.p.", offset: 2},
}

// GenerateScenarios avalia o modelo em três cenários da variável alvo,
// mantendo as demais variáveis na linha-base: último valor disponível na
// tabela de referência, média da coluna como fallback, ou 0.0 se a coluna
// não existir. Valores saem arredondados a 2 casas.
func GenerateScenarios(model *FittedModel, ref *domain.Table, target string) ([]domain.ScenarioRow, error) {
	if !contains(model.Predictors, target) {
		return nil, &UnknownPredictorError{
			Predictor: target,
			Known:     append([]string(nil), model.Predictors...),
		}
	}

	baseline := make(map[string]float64, len(model.Predictors))
	for _, name := range model.Predictors {
		if name == ConstName {
			baseline[name] = 1.0
			continue
		}
		baseline[name] = baselineValue(ref, name)
	}

	current := baseline[target]

	rows := make([]domain.ScenarioRow, 0, len(scenarioOffsets))
	for _, scenario := range scenarioOffsets {
		value := current + scenario.offset

		row := make(map[string]float64, len(baseline))
		for k, v := range baseline {
			row[k] = v
		}
		row[target] = value

		predicted, err := model.Predict(row)
		if err != nil {
			return nil, err
		}

		rows = append(rows, domain.ScenarioRow{
			Label:       scenario.label,
			TargetValue: utils.RoundWithTwoDecimalPlace(value),
			Predicted:   utils.RoundWithTwoDecimalPlace(predicted),
		})
	}

	return rows, nil
}

// baselineValue escolhe o valor base de uma variável: último valor não
// ausente, média da coluna, ou zero quando a coluna não existe.
func baselineValue(ref *domain.Table, name string) float64 {
	if ref == nil || !ref.HasColumn(name) {
		return 0.0
	}

	if last, ok := ref.LastValid(name); ok {
		return last
	}

	valid := ref.ValidValues(name)
	if len(valid) == 0 {
		return 0.0
	}
	return stat.Mean(valid, nil)
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
