package model

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type AuthMeResponse struct {
	Identifier string    `json:"identifier"`
	ExpiresAt  time.Time `json:"expires_at"`
}
