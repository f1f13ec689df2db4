package handler

import (
	"net/http"

	"github.com/econorealize/credit-insights-api/internal/usecases/authenticating"
	"github.com/econorealize/credit-insights-api/pkg/apiErrors"
	"github.com/econorealize/credit-insights-api/pkg/log"
)

type loginRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login autentica um cliente da API e emite o token de acesso.
func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo JSON inválido", nil)
			return
		}

		token, err := service.Login(req.ClientID, req.ClientSecret)
		if err != nil {
			if authenticating.IsCredentialsError(err) {
				logger.WithField("error", err.Error()).Warn("login: credenciais inválidas")
				apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "credenciais inválidas", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(loginResponse{Token: token}); err != nil {
			logger.WithError(err).Error("login: falha ao codificar a resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
