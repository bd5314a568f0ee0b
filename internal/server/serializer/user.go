package serializer

import "github.com/shishikan-sg/shishikan/internal/model"

// User serializes the public render of a user.
func User(m *model.User) map[string]any {
	return map[string]any{
		"id":                m.ID,
		"name":              m.Name,
		"profile_image_url": m.ProfileImageURL,
	}
}

// CurrentUser serializes the render of the authenticated user.
func CurrentUser(m *model.User) map[string]any {
	r := User(m)
	r["email"] = m.Email
	return r
}
