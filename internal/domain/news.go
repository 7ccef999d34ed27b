package domain

import "time"

// NewsCategories enumerates the categories the news endpoints accept, in
// display order.
var NewsCategories = []string{
	"technology", "science", "business", "entertainment", "health", "sports",
}

// ValidNewsCategory reports whether c is a known news category.
func ValidNewsCategory(c string) bool {
	for _, known := range NewsCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a normalized news article, independent of provider.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"urlToImage,omitempty"`
	Category    string    `json:"category"`
}

// NewsCategory describes one selectable category for the UI.
type NewsCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
