package modeling

import (
	"fmt"
	"strings"
	"time"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

// ConstName é o nome do termo constante (intercepto) do modelo.
const ConstName = "const"

// FittedModel é um modelo linear ajustado. A lista de variáveis na ordem
// do ajuste (com o intercepto em primeiro) é um campo de primeira classe,
// definido na construção e nunca mutado depois.
type FittedModel struct {
	Target       string
	Predictors   []string
	Coefficients map[string]float64
	RSquared     float64
	NObs         int
	FittedAt     time.Time
}

// Predict avalia o modelo sobre uma linha de valores por variável. A linha
// deve conter todas as variáveis do modelo, inclusive a chave "const"
// mapeada para 1.0.
func (m *FittedModel) Predict(row map[string]float64) (float64, error) {
	var prediction float64
	for _, name := range m.Predictors {
		value, ok := row[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingRowValue, name)
		}
		prediction += m.Coefficients[name] * value
	}
	return prediction, nil
}

// Report converte o modelo para o formato de resposta da API.
func (m *FittedModel) Report() *domain.ModelReport {
	coefficients := make(map[string]float64, len(m.Coefficients))
	for name, coef := range m.Coefficients {
		coefficients[name] = coef
	}

	return &domain.ModelReport{
		Predictors:   append([]string(nil), m.Predictors...),
		Coefficients: coefficients,
		RSquared:     m.RSquared,
		Observations: m.NObs,
		FittedAt:     m.FittedAt,
		Summary:      m.Summary(),
	}
}

// Summary monta o resumo textual do ajuste, com a tabela de coeficientes.
func (m *FittedModel) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Regressão OLS, variável dependente: %s\n", m.Target)
	fmt.Fprintf(&b, "Observações: %d    R²: %.4f\n", m.NObs, m.RSquared)
	if !m.FittedAt.IsZero() {
		fmt.Fprintf(&b, "Ajustado em: %s\n", m.FittedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "%-24s %14s\n", "Variável", "Coeficiente")

	for _, name := range m.Predictors {
		fmt.Fprintf(&b, "%-24s %14.6f\n", name, m.Coefficients[name])
	}

	return b.String()
}
