package handlers

import (
	"net/http"
	"strconv"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/httpserver/deps"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 50
)

// News serves cached-or-fresh articles for a category.
func News(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			category = "technology"
		}
		if !domain.ValidNewsCategory(category) {
			badRequest(w, "unknown news category")
			return
		}

		limit := defaultNewsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				badRequest(w, "limit must be a positive integer")
				return
			}
			limit = min(n, maxNewsLimit)
		}

		res := d.Orchestrator.News(r.Context(), category, limit)
		writeJSON(w, http.StatusOK, withProvenance(res.Articles, res.Provenance))
	}
}

// NewsCategories returns the static category list for the UI.
func NewsCategories(d deps.Deps) http.HandlerFunc {
	categories := []domain.NewsCategory{
		{ID: "technology", Name: "Technology", Icon: "laptop"},
		{ID: "science", Name: "Science", Icon: "flask"},
		{ID: "business", Name: "Business", Icon: "briefcase"},
		{ID: "entertainment", Name: "Entertainment", Icon: "film"},
		{ID: "health", Name: "Health", Icon: "heart"},
		{ID: "sports", Name: "Sports", Icon: "trophy"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ok(w, categories)
	}
}
