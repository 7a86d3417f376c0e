package dto

import "github.com/golang-jwt/jwt/v5"

// SessionClaims defines the custom claims of a session token. The registered
// ID claim holds the session ULID.
type SessionClaims struct {
	VideoID string `json:"vid"`
	jwt.RegisteredClaims
}

// SessionResponse is the current selection, or the empty state.
// @Description Current video selection of the session
type SessionResponse struct {
	HasSelection bool   `json:"has_selection"`
	SessionID    string `json:"session_id,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
	WatchURL     string `json:"watch_url,omitempty"`
	EmbedURL     string `json:"embed_url,omitempty"`
	Message      string `json:"message,omitempty"`
}
