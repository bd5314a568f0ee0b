package serializer

import "github.com/shishikan-sg/shishikan/internal/model"

// List serializes the render of a list with its denormalized owner.
func List(m *model.List, owner *model.User) map[string]any {
	r := map[string]any{
		"id":          m.ID,
		"name":        m.Name,
		"description": m.Description,
		"visibility":  m.Visibility,
		"created_at":  m.CreatedAt.UTC(),
		"user":        map[string]any{"id": m.UserID},
	}
	if owner != nil {
		r["user"] = User(owner)
	}
	return r
}

// Lists serializes the render of lists owned by the same user.
func Lists(m []*model.List, owner *model.User) []map[string]any {
	lists := make([]map[string]any, len(m))
	for i, l := range m {
		lists[i] = List(l, owner)
	}
	return lists
}
