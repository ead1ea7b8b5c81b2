// Package peer talks to other FurNet instances over their public HTTP API.
package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/furnet/instance-server/internal/domain"
)

// maxIdentityBody caps how much of a peer's identity response is read.
// Peers are untrusted; a misbehaving one must not exhaust memory.
const maxIdentityBody = 1 << 20

// IdentityClient defines the interface for fetching a peer's self-reported
// identity document. Implementations classify failures so callers can map
// them to user-visible error codes without inspecting transport details.
type IdentityClient interface {
	FetchIdentity(ctx context.Context, instanceURL string) (*domain.Animal, error)
}

// Client fetches identity documents over HTTP.
type Client struct {
	http *http.Client
}

// Ensure Client implements IdentityClient.
var _ IdentityClient = (*Client)(nil)

// NewClient creates a new peer client. Timeouts are controlled per call
// through the request context.
func NewClient() *Client {
	return &Client{http: &http.Client{}}
}

// StatusError reports a non-2xx response from a peer's identity endpoint.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("peer returned status %d", e.StatusCode)
}

// FetchIdentity fetches {instanceURL}/identity and decodes the identity
// document. Transport failures and non-2xx statuses are reported as
// domain.ErrPeerUnreachable; a 2xx response with a malformed body is
// reported as domain.ErrInvalidPeerResponse.
func (c *Client) FetchIdentity(ctx context.Context, instanceURL string) (*domain.Animal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, instanceURL+"/identity", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPeerUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPeerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", domain.ErrPeerUnreachable, &StatusError{StatusCode: resp.StatusCode})
	}

	var identity domain.Animal
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxIdentityBody)).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: decoding identity document: %v", domain.ErrInvalidPeerResponse, err)
	}

	return &identity, nil
}

// ProbeErrorCode maps a FetchIdentity error to the short failure code
// reported in health-check results. Specific transport categories are
// matched before the generic unreachable bucket.
func ProbeErrorCode(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("http_%d", statusErr.StatusCode)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns_error"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection_refused"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPeerResponse):
		return "invalid_response"
	case errors.Is(err, domain.ErrPeerUnreachable):
		return "connection_error"
	default:
		return "internal_error"
	}
}
