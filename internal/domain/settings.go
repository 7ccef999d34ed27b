package domain

import "time"

// SettingsID is the key of the settings singleton. There is exactly one
// settings document per installation.
const SettingsID = "default"

// Settings holds every user-tunable dashboard option. The object is always
// fully populated: updates merge onto prior state, and absent fields keep
// their previous values.
type Settings struct {
	ID                string          `json:"_id"`
	Theme             string          `json:"theme"`       // auto | light | dark
	ClockFormat       string          `json:"clockFormat"` // 12h | 24h
	WeatherLocation   string          `json:"weatherLocation"`
	WeatherUnit       string          `json:"weatherUnit"` // fahrenheit | celsius
	BackgroundRefresh int             `json:"backgroundRefresh"` // seconds, 10..300
	Notifications     bool            `json:"notifications"`
	AIAssistant       bool            `json:"aiAssistant"`
	MonitoringInterval int            `json:"monitoringInterval"` // seconds, 30..3600
	AIProvider        string          `json:"aiProvider"` // basegeek | openai | anthropic | local
	AIModel           string          `json:"aiModel"`
	NewsCategories    []string        `json:"newsCategories"`
	DashboardLayout   DashboardLayout `json:"dashboardLayout"`
	UpdatedAt         time.Time       `json:"updatedAt,omitempty"`
}

// DashboardLayout controls widget placement on the start page.
type DashboardLayout struct {
	Widgets []string `json:"widgets"`
	Columns int      `json:"columns"` // 1..6
}

// DefaultSettings returns the documented defaults. Reset restores exactly
// this object.
func DefaultSettings() Settings {
	return Settings{
		ID:                 SettingsID,
		Theme:              "auto",
		ClockFormat:        "12h",
		WeatherLocation:    "Arkadelphia, AR 71923",
		WeatherUnit:        "fahrenheit",
		BackgroundRefresh:  30,
		Notifications:      true,
		AIAssistant:        true,
		MonitoringInterval: 60,
		AIProvider:         "basegeek",
		AIModel:            "gpt-3.5-turbo",
		NewsCategories:     []string{"technology", "science"},
		DashboardLayout: DashboardLayout{
			Widgets: []string{"weather", "clock", "services", "news", "ai-chat"},
			Columns: 3,
		},
	}
}
