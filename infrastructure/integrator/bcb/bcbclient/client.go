package bcbclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/econorealize/credit-insights-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SeriesObservation é uma linha bruta do SGS. O valor pode vir com vírgula
// como separador decimal.
type SeriesObservation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// RangeParams delimita o período da consulta, em dd/mm/aaaa. Nil busca o
// histórico completo da série.
type RangeParams struct {
	StartDate string
	EndDate   string
}

type Client interface {
	FetchSeries(ctx context.Context, code int, params *RangeParams) ([]SeriesObservation, error)
}

type SGSClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente do SGS.
func NewClient(cfg *config.Config) Client {
	return &SGSClient{
		httpClient: &http.Client{
			Timeout: cfg.BCB.Timeout(),
		},
		config: cfg,
	}
}

// FetchSeries consulta uma série do SGS, opcionalmente restrita a um
// período. Respostas não-200 e falhas de rede retornam erro; o fallback
// para o histórico completo é decisão da camada acima.
func (c *SGSClient) FetchSeries(ctx context.Context, code int, params *RangeParams) ([]SeriesObservation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.BCB.Timeout()+5*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.config.BCB.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = fmt.Sprintf("%s/bcdata.sgs.%d/dados", endpoint.Path, code)

	query := endpoint.Query()
	query.Set("formato", "json")
	if params != nil && params.StartDate != "" && params.EndDate != "" {
		query.Set("dataInicial", params.StartDate)
		query.Set("dataFinal", params.EndDate)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("User-Agent", c.config.BCB.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição da série %d falhou com status: %s", code, resp.Status)
	}

	var observations []SeriesObservation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return observations, nil
}
