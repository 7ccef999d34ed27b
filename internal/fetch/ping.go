package fetch

import (
	"context"
	"net/http"
	"time"
)

// PingResult is the raw outcome of one probe, before classification.
// Err is non-nil only for network-level failures (connect, DNS, timeout);
// any HTTP response, including 4xx/5xx, counts as a reachable service.
type PingResult struct {
	Latency    int64 // wall-clock, ms
	StatusCode int
	Err        error
}

// Pinger issues single health probes against monitored services.
type Pinger struct {
	client *http.Client
}

// NewPinger builds a pinger. Redirects are followed; keep-alives are off so
// each probe measures a full connection, like a fresh visitor would see.
func NewPinger() *Pinger {
	return &Pinger{
		client: &http.Client{
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
}

// Ping probes url once with the given timeout and records the latency.
// Never returns an error: network failures land in PingResult.Err so a
// fan-out over many services can't short-circuit.
func (p *Pinger) Ping(ctx context.Context, url string, timeout time.Duration) PingResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return PingResult{
			Latency: time.Since(start).Milliseconds(),
			Err:     &UpstreamError{Kind: KindNetworkError, Op: "ping", Err: err},
		}
	}

	resp, err := p.client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return PingResult{Latency: latency, Err: wrapTransportErr("ping", err)}
	}
	_ = resp.Body.Close()

	return PingResult{Latency: latency, StatusCode: resp.StatusCode}
}
