package analyzing

import (
	"math"
	"time"

	"github.com/econorealize/credit-insights-api/internal/domain"
)

// AlignSeries faz o left join da série interna com a tabela macro pela
// chave de mês canônico. Meses da base interna sem correspondência macro
// permanecem com valores ausentes; meses presentes apenas nos dados macro
// são descartados. Os insumos não são mutados: a saída é sempre uma
// tabela nova, então juntar duas vezes os mesmos insumos produz tabelas
// idênticas.
func AlignSeries(internal domain.Series, macro *domain.Table) *domain.Table {
	unified := domain.NewTable()

	unified.Months = make([]time.Time, len(internal.Points))
	target := make([]float64, len(internal.Points))
	for i, p := range internal.Points {
		unified.Months[i] = p.Month
		target[i] = p.Value
	}
	unified.AddColumn(internal.Name, target)

	if macro == nil {
		return unified
	}

	for _, name := range macro.ColumnNames {
		macroCol := macro.Columns[name]

		byMonth := make(map[time.Time]float64, len(macro.Months))
		for i, month := range macro.Months {
			byMonth[month] = macroCol[i]
		}

		col := make([]float64, len(unified.Months))
		for i, month := range unified.Months {
			if v, ok := byMonth[month]; ok {
				col[i] = v
			} else {
				col[i] = math.NaN()
			}
		}
		unified.AddColumn(name, col)
	}

	return unified
}

// mergeExtras acrescenta à tabela unificada as colunas extras vindas do
// upload, apenas para indicadores que a busca macro não forneceu.
func mergeExtras(unified *domain.Table, extras []domain.Series) {
	for _, extra := range extras {
		if unified.HasColumn(extra.Name) {
			continue
		}

		byMonth := make(map[time.Time]float64, len(extra.Points))
		for _, p := range extra.Points {
			byMonth[p.Month] = p.Value
		}

		col := make([]float64, len(unified.Months))
		for i, month := range unified.Months {
			if v, ok := byMonth[month]; ok {
				col[i] = v
			} else {
				col[i] = math.NaN()
			}
		}
		unified.AddColumn(extra.Name, col)
	}
}

// completeRows devolve a tabela restrita às linhas sem valores ausentes
// nas colunas dadas, preservando todas as colunas.
func completeRows(table *domain.Table, required []string) *domain.Table {
	var keep []int
	for i := range table.Months {
		complete := true
		for _, name := range required {
			col, ok := table.Columns[name]
			if !ok || math.IsNaN(col[i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	out := domain.NewTable()
	out.Months = make([]time.Time, len(keep))
	for j, i := range keep {
		out.Months[j] = table.Months[i]
	}

	for _, name := range table.ColumnNames {
		src := table.Columns[name]
		col := make([]float64, len(keep))
		for j, i := range keep {
			col[j] = src[i]
		}
		out.AddColumn(name, col)
	}

	return out
}
