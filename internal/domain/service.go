package domain

import "time"

// Default check parameters applied when a service is registered without them.
const (
	DefaultAlertThreshold = 5000 // milliseconds
	DefaultCheckInterval  = 300  // seconds
)

// ServiceType categorizes what kind of endpoint is being monitored.
type ServiceType string

const (
	TypeWeb      ServiceType = "web"
	TypeAPI      ServiceType = "api"
	TypeDatabase ServiceType = "database"
	TypeService  ServiceType = "service"
)

// ValidServiceType reports whether t is one of the known service types.
func ValidServiceType(t ServiceType) bool {
	switch t {
	case TypeWeb, TypeAPI, TypeDatabase, TypeService:
		return true
	}
	return false
}

// Service is a user-registered endpoint observed by the health monitor.
//
// Identity is the UUID; Name is unique across the registry and is what the
// dashboard displays. Observed state (Status, ResponseTime, LastChecked,
// Uptime) is written exclusively from check results; request handlers never
// set it directly.
type Service struct {
	// Identity (immutable after registration)
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`

	// User configuration
	Type           ServiceType `json:"type"`
	Description    string      `json:"description,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Enabled        bool        `json:"enabled"`
	AlertThreshold int         `json:"alertThreshold"` // response-time ceiling, ms
	CheckInterval  int         `json:"checkInterval"`  // seconds between background checks

	// Observed state, derived from the most recent check
	Status       Status    `json:"status"`
	ResponseTime int64     `json:"responseTime"` // ms
	LastChecked  time.Time `json:"lastChecked"`
	Uptime       float64   `json:"uptime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ApplyCheck folds a check result into the service's observed state.
func (s *Service) ApplyCheck(res CheckResult) {
	s.Status = res.Status
	s.ResponseTime = res.ResponseTime
	s.LastChecked = res.CheckedAt
	s.UpdatedAt = res.CheckedAt
}

// ServiceUpdate carries the mutable fields of a PUT /services/:id request.
// Nil pointers mean "leave unchanged".
type ServiceUpdate struct {
	Name           *string      `json:"name,omitempty"`
	URL            *string      `json:"url,omitempty"`
	Type           *ServiceType `json:"type,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Enabled        *bool        `json:"enabled,omitempty"`
	AlertThreshold *int         `json:"alertThreshold,omitempty"`
	CheckInterval  *int         `json:"checkInterval,omitempty"`
}
