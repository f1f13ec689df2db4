package utils

import (
	"fmt"
	"strings"
	"time"
)

// Formatos de data aceitos em uploads e parâmetros da API. O formato
// brasileiro (dd/mm/aaaa) é o que o SGS do BCB usa nos parâmetros de período.
const (
	ISODateLayout = "2006-01-02"
	BRDateLayout  = "02/01/2006"
)

var uploadDateLayouts = []string{
	ISODateLayout,
	BRDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/2006",
	"2006-01",
}

// ParseDate interpreta uma data em formato ISO ou brasileiro.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("data inválida: %q", dateStr)
}

// ToBCBDate normaliza uma data ISO ou brasileira para dd/mm/aaaa, o
// formato exigido pelos parâmetros dataInicial/dataFinal do SGS.
func ToBCBDate(dateStr string) (string, error) {
	s := strings.TrimSpace(dateStr)

	if t, err := time.Parse(BRDateLayout, s); err == nil {
		return t.Format(BRDateLayout), nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(BRDateLayout), nil
}
