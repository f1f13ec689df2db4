package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims do token emitido para clientes da API.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}
