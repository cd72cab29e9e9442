package models

import "github.com/golang-jwt/jwt/v5"

// TokenRequest is the identity body presented to the token endpoint.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse returns the signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// TokenClaims is the session token payload. The role is deliberately absent:
// privileged routes re-read the stored role, so a stale or forged claim can
// never escalate.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
