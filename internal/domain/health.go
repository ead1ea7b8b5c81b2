package domain

// HealthResult is the outcome of probing one peer's identity endpoint.
// It only ever exists inside the response of a single health-check call.
type HealthResult struct {
	// InstanceURL is the normalized URL that was probed.
	InstanceURL string `json:"instance_url"`
	IsAlive     bool   `json:"is_alive"`
	// ResponseTimeMS is the elapsed probe time in milliseconds, rounded
	// to two decimals. Present even when the probe failed.
	ResponseTimeMS float64 `json:"response_time_ms"`
	// Error is a short failure code; absent when the peer is alive.
	Error *string `json:"error,omitempty"`
	// Name and Emoji are taken from the peer's identity document and are
	// only present when the peer is alive.
	Name  *string `json:"name,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
}

// HealthCheckRequest is the body of POST /health-check.
type HealthCheckRequest struct {
	InstanceURLs []string `json:"instance_urls"`
}
