package model

import "time"

type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	Token          string `json:"token"`
	ExpiresInHours int64  `json:"expires_in_hours"`
}

type RegisterResponse struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
}

// Claims is the identity carried by a verified token. TokenID is the JWT jti
// in jwt mode and empty for store sessions.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	TokenID   string
}

type User struct {
	Identifier   string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	Token      string
	Identifier string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
