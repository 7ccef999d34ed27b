package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingHealthyService(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	res := NewPinger().Ping(context.Background(), ts.URL, 5*time.Second)

	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.GreaterOrEqual(t, res.Latency, int64(0))
}

func TestPingHTTPErrorIsNotAnError(t *testing.T) {
	// 4xx and 5xx mean the service is reachable; classification decides
	// what to make of the status code.
	for _, code := range []int{404, 500, 503} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		res := NewPinger().Ping(context.Background(), ts.URL, 5*time.Second)
		ts.Close()

		require.NoError(t, res.Err, "status %d must not be a ping error", code)
		assert.Equal(t, code, res.StatusCode)
	}
}

func TestPingConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close() // nothing listens there anymore

	res := NewPinger().Ping(context.Background(), url, 2*time.Second)

	require.Error(t, res.Err)
	var uerr *UpstreamError
	require.ErrorAs(t, res.Err, &uerr)
	assert.Equal(t, KindNetworkError, uerr.Kind)
}

func TestPingTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		ts.Close()
	}()

	start := time.Now()
	res := NewPinger().Ping(context.Background(), ts.URL, 100*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, res.Err)
	var uerr *UpstreamError
	require.ErrorAs(t, res.Err, &uerr)
	assert.Equal(t, KindTimeout, uerr.Kind)
	assert.Less(t, elapsed, 2*time.Second, "timeout must bound the call")
}

func TestPingInvalidURL(t *testing.T) {
	res := NewPinger().Ping(context.Background(), "://not-a-url", time.Second)
	require.Error(t, res.Err)
}
