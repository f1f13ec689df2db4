package normalizing

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/domain"
	"github.com/econorealize/credit-insights-api/pkg/utils"
)

// Colunas obrigatórias da base interna
const (
	ColumnDate        = "data"
	ColumnDefaultRate = "inadimplencia_total"
)

// gluedHeader é o caso clássico de export malformado: tudo numa única
// coluna "data;inadimplencia_total"
const gluedHeader = ColumnDate + ";" + ColumnDefaultRate

// Upload é o resultado da normalização: a série interna de inadimplência
// e as colunas extras do arquivo que coincidem com variáveis macro
// conhecidas, também já mensais.
type Upload struct {
	Internal domain.Series
	Extras   []domain.Series
}

type Normalizer interface {
	NormalizeUpload(filename string, data []byte) (*Upload, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Normalizer {
	return &Service{cfg: cfg}
}

// NormalizeUpload lê um arquivo .csv ou .xlsx com ordem de colunas,
// capitalização e separador desconhecidos e o normaliza para uma série
// mensal canônica: um valor por mês, mês truncado ao dia primeiro,
// duplicatas agregadas por média. Linhas com data ou valor inválido são
// descartadas; sucesso parcial é normal.
func (s *Service) NormalizeUpload(filename string, data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	var (
		rows [][]string
		err  error
	)

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xlsx" || ext == ".xls" {
		rows, err = readSpreadsheet(data)
	} else {
		rows, err = readDelimited(data)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoUsableRows
	}

	headers := normalizeHeaders(rows[0])
	records := rows[1:]

	// Caso clássico: veio tudo numa coluna "data;inadimplencia_total"
	if len(headers) == 1 && headers[0] == gluedHeader {
		headers, records = splitGluedColumn(records)
	}

	columnIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := columnIndex[h]; !seen {
			columnIndex[h] = i
		}
	}

	var missing []string
	for _, required := range []string{ColumnDate, ColumnDefaultRate} {
		if _, ok := columnIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, NewMissingColumnsError(missing...)
	}

	internal, parsed := buildMonthlySeries(ColumnDefaultRate, records, columnIndex[ColumnDate], columnIndex[ColumnDefaultRate])
	if internal.Len() == 0 {
		return nil, ErrNoUsableRows
	}

	logrus.WithFields(logrus.Fields{
		"rows_in":       len(records),
		"rows_parsed":   parsed,
		"unique_months": internal.Len(),
	}).Info("Base interna normalizada")

	upload := &Upload{Internal: internal}

	// Colunas extras que coincidem com variáveis macro conhecidas são
	// carregadas junto; as demais são ignoradas
	for _, candidate := range s.cfg.RegressorCandidates() {
		idx, ok := columnIndex[candidate]
		if !ok {
			continue
		}
		extra, _ := buildMonthlySeries(candidate, records, columnIndex[ColumnDate], idx)
		if extra.Len() > 0 {
			upload.Extras = append(upload.Extras, extra)
		}
	}

	return upload, nil
}

// readDelimited autodetecta o separador do texto; se a detecção colapsar
// tudo numa coluna só, tenta de novo com ponto e vírgula.
func readDelimited(data []byte) ([][]string, error) {
	delimiter := sniffDelimiter(data)

	rows, err := parseCSV(data, delimiter)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o arquivo delimitado")
	}

	if len(rows) > 0 && len(rows[0]) == 1 && delimiter != ';' {
		if retry, err := parseCSV(data, ';'); err == nil && len(retry) > 0 && len(retry[0]) > 1 {
			return retry, nil
		}
	}

	return rows, nil
}

func parseCSV(data []byte, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

// sniffDelimiter escolhe o separador mais frequente na primeira linha.
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}

	candidates := []rune{',', ';', '\t', '|'}
	best, bestCount := ',', 0
	for _, c := range candidates {
		count := bytes.Count(firstLine, []byte(string(c)))
		if count > bestCount {
			best, bestCount = c, count
		}
	}
	return best
}

// readSpreadsheet lê a primeira planilha de um .xlsx, com a primeira
// linha como cabeçalho.
func readSpreadsheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir a planilha")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler as linhas da planilha")
	}

	return rows, nil
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// splitGluedColumn separa a coluna única "data;inadimplencia_total" nas
// duas colunas esperadas.
func splitGluedColumn(records [][]string) ([]string, [][]string) {
	headers := []string{ColumnDate, ColumnDefaultRate}

	split := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		parts := strings.SplitN(record[0], ";", 2)
		if len(parts) < 2 {
			continue
		}
		split = append(split, parts)
	}

	return headers, split
}

// buildMonthlySeries monta uma série mensal a partir das colunas de data e
// valor: trunca ao primeiro dia do mês, agrega duplicatas por média e
// ordena. Retorna também quantas linhas foram aproveitadas.
func buildMonthlySeries(name string, records [][]string, dateIdx, valueIdx int) (domain.Series, int) {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	parsed := 0

	for _, record := range records {
		if dateIdx >= len(record) || valueIdx >= len(record) {
			continue
		}

		date, err := utils.ParseDate(record[dateIdx])
		if err != nil {
			continue
		}

		value, err := utils.ParseDecimal(record[valueIdx])
		if err != nil {
			continue
		}

		month := domain.CanonicalMonth(date)
		sums[month] += value
		counts[month]++
		parsed++
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

	return series, parsed
}
