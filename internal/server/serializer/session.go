package serializer

import "github.com/shishikan-sg/shishikan/internal/model"

// Session serializes the render of a session.
func Session(m *model.Session) map[string]any {
	return map[string]any{
		"access_token": m.AccessToken,
		"expire_at":    m.ExpireAt.UTC(),
	}
}

// Authentication serializes the render of a sign in.
func Authentication(user *model.User, session *model.Session) map[string]any {
	return map[string]any{
		"user":    CurrentUser(user),
		"session": Session(session),
	}
}
