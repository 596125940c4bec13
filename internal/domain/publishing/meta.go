package publishing

import (
	"strings"
	"time"
)

// Meta holds the columns every publishable item carries.
type Meta struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	ViewCount   int64      `json:"viewCount"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Lookup selects a single item by id or, when id is empty, by slug.
type Lookup struct {
	ID   string
	Slug string
}

// Normalize trims both keys and rejects a lookup with neither set.
func (l Lookup) Normalize() (Lookup, error) {
	normalized := Lookup{
		ID:   strings.TrimSpace(l.ID),
		Slug: strings.TrimSpace(l.Slug),
	}
	if normalized.ID == "" && normalized.Slug == "" {
		return Lookup{}, NewValidationError("id", "id or slug is required")
	}
	return normalized, nil
}

func (l Lookup) String() string {
	if l.ID != "" {
		return "id=" + l.ID
	}
	return "slug=" + l.Slug
}

// CleanTags trims tags and drops empty entries. It never returns nil.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
