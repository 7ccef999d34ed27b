package redis

const (
	// KeyPrefixService is the prefix for individual service documents.
	KeyPrefixService = "startpage:service:"
	// KeyServiceNames maps service name -> service ID (uniqueness index).
	KeyServiceNames = "startpage:services:names"
	// KeyAllServices is the set of all registered service IDs.
	KeyAllServices = "startpage:services:all"
	// KeySettings holds the settings singleton document.
	KeySettings = "startpage:settings"
	// KeyPrefixCache is the prefix for weather/news cache entries.
	KeyPrefixCache = "startpage:cache:"
)

// ServiceKey returns the redis key for a service document.
func ServiceKey(id string) string {
	return KeyPrefixService + id
}

// CacheKey returns the redis key for a cache entry.
func CacheKey(key string) string {
	return KeyPrefixCache + key
}
