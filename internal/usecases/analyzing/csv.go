package analyzing

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

// WriteUnifiedCSV escreve a tabela unificada: uma linha por mês, coluna
// "data" seguida das colunas na ordem da tabela. Valores ausentes saem
// como campo vazio.
func WriteUnifiedCSV(w io.Writer, table *domain.Table) error {
	writer := csv.NewWriter(w)

	header := append([]string{"data"}, table.ColumnNames...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, month := range table.Months {
		record := make([]string, 0, len(header))
		record = append(record, month.Format("2006-01-02"))

		for _, name := range table.ColumnNames {
			v := table.Columns[name][i]
			if math.IsNaN(v) {
				record = append(record, "")
			} else {
				record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteScenariosCSV escreve as projeções de cenário: uma linha por
// cenário, com o rótulo, o valor da variável alvo e a previsão.
func WriteScenariosCSV(w io.Writer, target string, scenarios []domain.ScenarioRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"cenario", target, "inadimplencia_prevista"}); err != nil {
		return err
	}

	for _, row := range scenarios {
		record := []string{
			row.Label,
			strconv.FormatFloat(row.TargetValue, 'f', 2, 64),
			strconv.FormatFloat(row.Predicted, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
