package serializer

import "github.com/shishikan-sg/shishikan/internal/model"

// Category serializes the render of a category.
func Category(m *model.Category) map[string]any {
	return map[string]any{
		"id":   m.ID,
		"name": m.Name,
	}
}

// Categories serializes the render of categories.
func Categories(m []*model.Category) []map[string]any {
	categories := make([]map[string]any, len(m))
	for i, c := range m {
		categories[i] = Category(c)
	}
	return categories
}

// Food serializes the render of a food with its categories and tags.
func Food(m *model.Food, categories []*model.Category, tags []*model.Tag) map[string]any {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}

	images := m.Images
	if images == nil {
		images = []string{}
	}

	return map[string]any{
		"id":          m.ID,
		"list_id":     m.ListID,
		"name":        m.Name,
		"description": m.Description,
		"categories":  Categories(categories),
		"tags":        names,
		"address":     m.Address,
		"price":       m.Price,
		"verdict":     m.Verdict,
		"cover_image": m.CoverImage,
		"images":      images,
		"created_at":  m.CreatedAt.UTC(),
	}
}
