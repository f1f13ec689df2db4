package domain

import (
	"math"
	"sort"
	"time"
)

// MonthlyPoint é uma observação mensal já canonizada: o mês é sempre o
// primeiro dia do mês em UTC.
type MonthlyPoint struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// Series é uma sequência ordenada de pontos mensais, com no máximo um
// ponto por mês.
type Series struct {
	Name   string
	Points []MonthlyPoint
}

// CanonicalMonth trunca uma data para o primeiro dia do mês em UTC.
// É a chave universal de junção entre séries.
func CanonicalMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s Series) Len() int {
	return len(s.Points)
}

// FirstMonth retorna o mês mais antigo da série.
func (s Series) FirstMonth() (time.Time, bool) {
	if len(s.Points) == 0 {
		return time.Time{}, false
	}
	return s.Points[0].Month, true
}

// LastMonth retorna o mês mais recente da série.
func (s Series) LastMonth() (time.Time, bool) {
	if len(s.Points) == 0 {
		return time.Time{}, false
	}
	return s.Points[len(s.Points)-1].Month, true
}

// Table é uma tabela mensal larga. Valores ausentes são NaN. Months é
// mantido ordenado e sem duplicatas; ColumnNames preserva a ordem de
// inserção das colunas.
type Table struct {
	Months      []time.Time
	ColumnNames []string
	Columns     map[string][]float64
}

func NewTable() *Table {
	return &Table{
		Columns: make(map[string][]float64),
	}
}

// NumRows retorna a quantidade de meses da tabela.
func (t *Table) NumRows() int {
	return len(t.Months)
}

// HasColumn indica se a coluna existe na tabela.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Columns[name]
	return ok
}

// Column retorna os valores de uma coluna, alinhados com Months.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.Columns[name]
	return col, ok
}

// AddColumn registra uma nova coluna. O tamanho deve coincidir com Months;
// a responsabilidade é do chamador.
func (t *Table) AddColumn(name string, values []float64) {
	if _, exists := t.Columns[name]; !exists {
		t.ColumnNames = append(t.ColumnNames, name)
	}
	t.Columns[name] = values
}

// LastValid retorna o valor não ausente mais recente de uma coluna.
func (t *Table) LastValid(name string) (float64, bool) {
	col, ok := t.Columns[name]
	if !ok {
		return 0, false
	}
	for i := len(col) - 1; i >= 0; i-- {
		if !math.IsNaN(col[i]) {
			return col[i], true
		}
	}
	return 0, false
}

// ValidValues retorna apenas os valores não ausentes de uma coluna.
func (t *Table) ValidValues(name string) []float64 {
	col, ok := t.Columns[name]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Clone devolve uma cópia independente da tabela, para que consumidores
// possam mutar colunas sem vazar alterações para os insumos originais.
func (t *Table) Clone() *Table {
	out := NewTable()
	out.Months = append([]time.Time(nil), t.Months...)
	for _, name := range t.ColumnNames {
		out.AddColumn(name, append([]float64(nil), t.Columns[name]...))
	}
	return out
}

// SortByMonth reordena a tabela cronologicamente, mantendo as colunas
// alinhadas com os meses.
func (t *Table) SortByMonth() {
	idx := make([]int, len(t.Months))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Months[idx[a]].Before(t.Months[idx[b]])
	})

	months := make([]time.Time, len(t.Months))
	for i, j := range idx {
		months[i] = t.Months[j]
	}
	t.Months = months

	for name, col := range t.Columns {
		sorted := make([]float64, len(col))
		for i, j := range idx {
			sorted[i] = col[j]
		}
		t.Columns[name] = sorted
	}
}
