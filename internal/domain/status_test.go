package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")

	tests := []struct {
		name      string
		latencyMs int64
		status    int
		err       error
		threshold int
		want      Status
	}{
		{
			name:      "network error wins over everything",
			latencyMs: 100,
			status:    0,
			err:       netErr,
			threshold: 5000,
			want:      StatusOffline,
		},
		{
			name:      "network error even with fast latency and 200",
			latencyMs: 10,
			status:    200,
			err:       netErr,
			threshold: 5000,
			want:      StatusOffline,
		},
		{
			name:      "slow response is a warning",
			latencyMs: 6000,
			status:    200,
			err:       nil,
			threshold: 5000,
			want:      StatusWarning,
		},
		{
			name:      "4xx is a warning",
			latencyMs: 100,
			status:    404,
			err:       nil,
			threshold: 5000,
			want:      StatusWarning,
		},
		{
			name:      "5xx is a warning when the connection succeeded",
			latencyMs: 100,
			status:    503,
			err:       nil,
			threshold: 5000,
			want:      StatusWarning,
		},
		{
			name:      "fast 200 is online",
			latencyMs: 100,
			status:    200,
			err:       nil,
			threshold: 5000,
			want:      StatusOnline,
		},
		{
			name:      "latency exactly at threshold is still online",
			latencyMs: 5000,
			status:    200,
			err:       nil,
			threshold: 5000,
			want:      StatusOnline,
		},
		{
			name:      "3xx counts as online",
			latencyMs: 50,
			status:    302,
			err:       nil,
			threshold: 5000,
			want:      StatusOnline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.latencyMs, tt.status, tt.err, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	// Same inputs must always produce the same output.
	for i := 0; i < 100; i++ {
		assert.Equal(t, StatusWarning, Classify(6000, 200, nil, 5000))
	}
}

func TestApplyCheck(t *testing.T) {
	now := time.Now()
	svc := &Service{Name: "jellyfin", Status: StatusUnknown}

	svc.ApplyCheck(CheckResult{
		Status:       StatusOnline,
		ResponseTime: 42,
		StatusCode:   200,
		CheckedAt:    now,
	})

	assert.Equal(t, StatusOnline, svc.Status)
	assert.Equal(t, int64(42), svc.ResponseTime)
	assert.Equal(t, now, svc.LastChecked)
	assert.Equal(t, now, svc.UpdatedAt)
}

func TestValidationErrorDetails(t *testing.T) {
	verr := NewValidationError().
		Add("theme", "must be one of auto, light, dark").
		Add("backgroundRefresh", "must be between 10 and 300")

	assert.False(t, verr.Empty())
	assert.Equal(t, []string{
		"backgroundRefresh: must be between 10 and 300",
		"theme: must be one of auto, light, dark",
	}, verr.Details())
	assert.Contains(t, verr.Error(), "theme")
	assert.Contains(t, verr.Error(), "backgroundRefresh")
}
