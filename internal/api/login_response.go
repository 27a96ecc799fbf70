package api

import "time"

// swagger:model api.LoginResponse
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-01T00:15:00Z"`
}
