package store

import "fmt"

// CacheKeyWeather builds the cache key for a weather lookup. Units are part
// of the key so imperial and metric results never shadow each other.
func CacheKeyWeather(location string, units string) string {
	return fmt.Sprintf("weather:%s:%s", location, units)
}

// CacheKeyNews builds the cache key for a news category.
func CacheKeyNews(category string) string {
	return "news:" + category
}
