package model

const (
	// VisibilityPublic makes a list readable by everyone.
	VisibilityPublic = "public"
	// VisibilityPrivate makes a list readable only by its owner.
	VisibilityPrivate = "private"
)

// A List represents a database record.
// A list is owned by exactly one user and groups food items.
type List struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID      string `msgpack:"user_id"     storm:"index"`
	Name        string `msgpack:"name"`
	Description string `msgpack:"description"`
	Visibility  string `msgpack:"visibility"  storm:"index"`
}

// IsPublic returns true if the list can be read by everyone.
func (l *List) IsPublic() bool {
	return l.Visibility == VisibilityPublic
}

// IsOwnedBy returns true if the given user owns the list.
func (l *List) IsOwnedBy(user *User) bool {
	return user != nil && l.UserID == user.ID
}

// IsReadableBy returns true if the given user (nil for anonymous) can read the list.
func (l *List) IsReadableBy(user *User) bool {
	return l.IsPublic() || l.IsOwnedBy(user)
}
