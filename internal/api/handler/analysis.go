package handler

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/usecases/analyzing"
	"github.com/econorealize/credit-insights-api/internal/usecases/modeling"
	"github.com/econorealize/credit-insights-api/internal/usecases/normalizing"
	"github.com/econorealize/credit-insights-api/pkg/apiErrors"
	"github.com/econorealize/credit-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RunAnalysis recebe o upload da base interna e devolve o resultado
// completo do pipeline em JSON.
func RunAnalysis(cfg *config.Config, normalizer normalizing.Normalizer, analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, ok := runPipeline(w, r, cfg, normalizer, analyzer)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"run_id": result.Response.RunID,
			"target": result.Response.Target,
		}).Info("analysis: pipeline concluído")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result.Response); err != nil {
			logger.WithError(err).Error("analysis: falha ao codificar a resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// DownloadUnifiedCSV reexecuta o pipeline sobre o upload e devolve a base
// unificada (interna + macro) em CSV.
func DownloadUnifiedCSV(cfg *config.Config, normalizer normalizing.Normalizer, analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, ok := runPipeline(w, r, cfg, normalizer, analyzer)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="base_unificada.csv"`)

		if err := analyzing.WriteUnifiedCSV(w, result.Unified); err != nil {
			logger.WithError(err).Error("analysis: falha ao escrever o CSV unificado")
		}
	})
}

// DownloadScenariosCSV reexecuta o pipeline sobre o upload e devolve as
// projeções de cenário em CSV.
func DownloadScenariosCSV(cfg *config.Config, normalizer normalizing.Normalizer, analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, ok := runPipeline(w, r, cfg, normalizer, analyzer)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="projecoes_credito.csv"`)

		if err := analyzing.WriteScenariosCSV(w, result.Response.Target, result.Response.Scenarios); err != nil {
			logger.WithError(err).Error("analysis: falha ao escrever o CSV de cenários")
		}
	})
}

// runPipeline concentra o fluxo comum dos três handlers: extrair o
// arquivo do multipart, normalizar e executar a análise, mapeando cada
// falha para o erro de API adequado. Retorna ok=false quando a resposta
// de erro já foi escrita.
func runPipeline(
	w http.ResponseWriter,
	r *http.Request,
	cfg *config.Config,
	normalizer normalizing.Normalizer,
	analyzer analyzing.Analyzer,
) (*analyzing.Result, bool) {
	logger := log.ForContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, cfg.Analysis.MaxUploadBytes)
	if err := r.ParseMultipartForm(cfg.Analysis.MaxUploadBytes); err != nil {
		logger.WithError(err).Warn("analysis: multipart inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "upload multipart inválido ou grande demais", nil)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "campo de arquivo 'file' é obrigatório", nil)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WithError(err).Error("analysis: falha ao ler o upload")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "falha ao ler o arquivo enviado", nil)
		return nil, false
	}

	upload, err := normalizer.NormalizeUpload(header.Filename, data)
	if err != nil {
		writeNormalizationError(w, logger, err)
		return nil, false
	}

	opts := analyzing.RunOptions{
		Target:    r.URL.Query().Get("target"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := analyzer.Run(r.Context(), upload, opts)
	if err != nil {
		writeAnalysisError(w, logger, err)
		return nil, false
	}

	return result, true
}

func writeNormalizationError(w http.ResponseWriter, logger log.Logger, err error) {
	var missingErr *normalizing.MissingColumnsError
	switch {
	case errors.As(err, &missingErr):
		logger.WithField("error", err.Error()).Warn("analysis: colunas obrigatórias ausentes")
		apiErrors.WriteError(w, apiErrors.ErrMissingColumns, err.Error(), missingErr.Missing)
	case errors.Is(err, normalizing.ErrEmptyFile), errors.Is(err, normalizing.ErrNoUsableRows):
		apiErrors.WriteError(w, apiErrors.ErrEmptyUpload, err.Error(), nil)
	default:
		logger.WithError(err).Error("analysis: falha ao normalizar o upload")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	}
}

func writeAnalysisError(w http.ResponseWriter, logger log.Logger, err error) {
	var unknownErr *modeling.UnknownPredictorError
	switch {
	case errors.Is(err, bcb.ErrNoSeriesAvailable):
		logger.WithField("error", err.Error()).Error("analysis: nenhuma série macro disponível")
		apiErrors.WriteError(w, apiErrors.ErrNoSeriesAvailable, err.Error(), nil)
	case errors.Is(err, analyzing.ErrInsufficientData), errors.Is(err, analyzing.ErrNoInternalSeries):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientData, err.Error(), nil)
	case errors.As(err, &unknownErr):
		apiErrors.WriteError(w, apiErrors.ErrUnknownVariable, err.Error(), unknownErr.Known)
	default:
		logger.WithError(err).Error("analysis: falha na execução do pipeline")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
