package domain

import "time"

// Status is the tri-state health classification of a monitored service.
// "unknown" only appears before the first check has completed.
type Status string

const (
	StatusOnline  Status = "online"
	StatusWarning Status = "warning"
	StatusOffline Status = "offline"
	StatusUnknown Status = "unknown"
)

// CheckResult is the outcome of a single health check against a service.
type CheckResult struct {
	Status       Status    `json:"status"`
	ResponseTime int64     `json:"responseTime"` // wall-clock latency, ms
	StatusCode   int       `json:"statusCode,omitempty"`
	Error        string    `json:"error,omitempty"`
	CheckedAt    time.Time `json:"lastChecked"`
}

// Classify maps a single probe outcome to a health status.
//
// Rules, in order: a network-level failure is offline; an HTTP error status
// (>= 400) is warning; a response slower than the alert threshold is warning;
// anything else is online. Pure function; the only inputs are the arguments.
func Classify(latencyMs int64, httpStatus int, err error, alertThresholdMs int) Status {
	if err != nil {
		return StatusOffline
	}
	if httpStatus >= 400 {
		return StatusWarning
	}
	if latencyMs > int64(alertThresholdMs) {
		return StatusWarning
	}
	return StatusOnline
}
