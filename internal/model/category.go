package model

// A Category represents a database record.
type Category struct {
	Base `msgpack:",inline" storm:"inline"`

	Name string `msgpack:"name" storm:"unique"`
}

// A Tag represents a database record.
// Tags are created on the fly when a food is added with an unknown tag name.
type Tag struct {
	Base `msgpack:",inline" storm:"inline"`

	Name string `msgpack:"name" storm:"unique"`
}
