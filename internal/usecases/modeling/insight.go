package modeling

import (
	"fmt"
	"math"
	"strings"
)

// GenerateInsight traduz um coeficiente do modelo e a qualidade do ajuste
// em uma frase executiva. Nunca falha: variável ausente gera a frase com
// efeito zero.
func GenerateInsight(model *FittedModel, predictor string) string {
	coef := model.Coefficients[predictor]

	rel := "reduzir"
	if coef > 0 {
		rel = "aumentar"
	}

	return fmt.Sprintf(
		"A cada +1 p.p. na %s, a inadimplência tende a %s em %.2f milhões. O modelo explica %.1f%% da variação observada.",
		strings.ReplaceAll(predictor, "_", " "),
		rel,
		math.Abs(coef),
		model.RSquared*100,
	)
}
