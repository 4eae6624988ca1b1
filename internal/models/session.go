package models

import "time"

// FlashData is a one-time notice shown on the next rendered page
type FlashData struct {
	Type    string `json:"type"` // success, error
	Message string `json:"message"`
}

// SessionData is the JSON payload stored per session row
type SessionData struct {
	User    *SessionUser `json:"user,omitempty"`
	Flashes []FlashData  `json:"flashes,omitempty"`
}

type Session struct {
	ID        string
	Data      SessionData
	ExpiresAt time.Time
}
