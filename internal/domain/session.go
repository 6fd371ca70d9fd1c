package domain

import "time"

// Session is the in-flight request context for one user awaiting a
// format selection. At most one session exists per user; a new URL
// replaces any existing one.
type Session struct {
	UserID    int64
	ChatID    int64
	URL       string
	Info      *MediaInfo
	Catalog   *Catalog // nil for audio-only content
	AudioOnly bool
	CreatedAt time.Time
}

// NewSession creates a session for a freshly resolved URL
func NewSession(userID, chatID int64, url string, info *MediaInfo) *Session {
	return &Session{
		UserID:    userID,
		ChatID:    chatID,
		URL:       url,
		Info:      info,
		CreatedAt: time.Now(),
	}
}

// Age returns how long the session has been waiting for a selection
func (s *Session) Age() time.Duration {
	return time.Since(s.CreatedAt)
}
