package handler

import (
	"net/http"

	"github.com/econorealize/credit-insights-api/internal/api/handler/router"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/usecases/analyzing"
	"github.com/econorealize/credit-insights-api/internal/usecases/authenticating"
	"github.com/econorealize/credit-insights-api/internal/usecases/normalizing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Analysis(cfg *config.Config, normalizer normalizing.Normalizer, analyzer analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis",
			Method:  http.MethodPost,
			Handler: RunAnalysis(cfg, normalizer, analyzer),
		},
		{
			Path:    "/v1/analysis/unified.csv",
			Method:  http.MethodPost,
			Handler: DownloadUnifiedCSV(cfg, normalizer, analyzer),
		},
		{
			Path:    "/v1/analysis/scenarios.csv",
			Method:  http.MethodPost,
			Handler: DownloadScenariosCSV(cfg, normalizer, analyzer),
		},
	}
}
