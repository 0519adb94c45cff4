package models

import "time"

// TokenResponse is returned by login, signup and refresh.
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresIn    int       `json:"expiresIn"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	CompanyID    string    `json:"companyId,omitempty"`
	Role         string    `json:"role"`
	IssuedAt     time.Time `json:"issuedAt"`
}
