package model

// A Food represents a database record.
// Its identity never changes once created.
type Food struct {
	Base `msgpack:",inline" storm:"inline"`

	ListID      string   `msgpack:"list_id"      storm:"index"`
	UserID      string   `msgpack:"user_id"      storm:"index"`
	Name        string   `msgpack:"name"`
	Description string   `msgpack:"description"`
	CategoryIDs []string `msgpack:"category_ids"`
	TagIDs      []string `msgpack:"tag_ids"`
	Address     string   `msgpack:"address"`
	Price       string   `msgpack:"price"`
	Verdict     string   `msgpack:"verdict"`
	CoverImage  string   `msgpack:"cover_image"`
	Images      []string `msgpack:"images"`
}
