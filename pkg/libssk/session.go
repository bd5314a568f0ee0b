package libssk

import "time"

// A Session contains details about an authenticated session.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpireAt    time.Time `json:"expire_at"`
}

// Defined returns true if session's fields are defined.
func (s Session) Defined() bool {
	return s.AccessToken != "" && !s.ExpireAt.IsZero()
}

// ExpiredAt returns true if the session is expired at the given time.
func (s Session) ExpiredAt(t time.Time) bool {
	return !s.Defined() || t.After(s.ExpireAt)
}

// Expired returns true if the session is expired.
func (s Session) Expired() bool {
	return s.ExpiredAt(time.Now())
}
