package model

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	// Identity provider fields
	GoogleID        string `msgpack:"google_id"         storm:"unique"`
	Email           string `msgpack:"email"             storm:"index"`
	Name            string `msgpack:"name"`
	ProfileImageURL string `msgpack:"profile_image_url"`
}

// NewUser returns a new user for the given Google account.
func NewUser(googleID, email, name string) *User {
	return &User{
		GoogleID: googleID,
		Email:    email,
		Name:     name,
	}
}
