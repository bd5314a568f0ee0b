package model

// A Hit is the search record of a food stored by the embedded search index.
// It is a denormalized projection, rebuilt from foods by the reindex command.
type Hit struct {
	ObjectID      string   `msgpack:"object_id"       storm:"id"`
	ListID        string   `msgpack:"list_id"         storm:"index"`
	OwnerID       string   `msgpack:"owner_id"        storm:"index"`
	OwnerName     string   `msgpack:"owner_name"`
	Visibility    string   `msgpack:"visibility"      storm:"index"`
	Name          string   `msgpack:"name"`
	Description   string   `msgpack:"description"`
	CategoryIDs   []string `msgpack:"category_ids"`
	Categories    []string `msgpack:"categories"`
	Tags          []string `msgpack:"tags"`
	Address       string   `msgpack:"address"`
	Price         string   `msgpack:"price"           storm:"index"`
	Verdict       string   `msgpack:"verdict"         storm:"index"`
	CoverImage    string   `msgpack:"cover_image"`
	Images        []string `msgpack:"images"`
	CreatedAtUnix int64    `msgpack:"created_at_unix" storm:"index"`
}
