package model

import (
	"time"
)

// A Session represents a database record.
type Session struct {
	Base `msgpack:",inline" storm:"inline"`

	ExpireAt    time.Time `msgpack:"expire_at"`
	UserID      string    `msgpack:"user_id"      storm:"index"`
	UserAgent   string    `msgpack:"user_agent"`
	AccessToken string    `msgpack:"access_token" storm:"unique"`

	Current bool `msgpack:"-"` // Computed field, not stored in database.
}
