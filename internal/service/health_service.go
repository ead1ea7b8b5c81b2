package service

import (
	"context"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/metrics"
	"github.com/furnet/instance-server/internal/netid"
	"github.com/furnet/instance-server/internal/peer"
)

const (
	// probeTimeout bounds each individual health probe so one hanging
	// peer cannot stall the rest of the batch beyond this.
	probeTimeout = 5 * time.Second

	// maxConcurrentProbes caps the fan-out on large input lists.
	maxConcurrentProbes = 16
)

// HealthService implements the bulk health-check workflow.
type HealthService struct {
	client  peer.IdentityClient
	metrics *metrics.Metrics
}

// NewHealthService creates a new HealthService.
func NewHealthService(client peer.IdentityClient, m *metrics.Metrics) *HealthService {
	return &HealthService{client: client, metrics: m}
}

// CheckHealth probes every URL concurrently and returns one result per
// input, in input order. Probes share no mutable state and a failing peer
// only ever affects its own entry; len(results) == len(urls) always holds.
func (s *HealthService) CheckHealth(ctx context.Context, urls []string) []domain.HealthResult {
	results := make([]domain.HealthResult, len(urls))

	g := &errgroup.Group{}
	g.SetLimit(maxConcurrentProbes)
	for i, raw := range urls {
		i, raw := i, raw
		g.Go(func() error {
			results[i] = s.probe(ctx, raw)
			return nil
		})
	}
	// Probes never return an error; failures are captured per entry.
	_ = g.Wait()

	return results
}

// probe checks a single peer and never fails: every outcome, including a
// malformed input URL, is folded into the result.
func (s *HealthService) probe(ctx context.Context, raw string) domain.HealthResult {
	normalized, _, err := netid.NormalizeInstanceURL(raw)
	if err != nil {
		s.metrics.PeerProbes.WithLabelValues("dead").Inc()
		return domain.HealthResult{
			InstanceURL: strings.TrimSpace(raw),
			IsAlive:     false,
			Error:       strPtr("invalid_url"),
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	identity, err := s.client.FetchIdentity(probeCtx, normalized)
	elapsed := time.Since(start)

	s.metrics.PeerProbeDuration.Observe(elapsed.Seconds())

	result := domain.HealthResult{
		InstanceURL:    normalized,
		ResponseTimeMS: roundMillis(elapsed),
	}

	if err != nil {
		s.metrics.PeerProbes.WithLabelValues("dead").Inc()
		result.Error = strPtr(peer.ProbeErrorCode(err))
		return result
	}

	s.metrics.PeerProbes.WithLabelValues("alive").Inc()
	result.IsAlive = true
	if identity.Name != "" {
		result.Name = strPtr(identity.Name)
	}
	if identity.Emoji != "" {
		result.Emoji = strPtr(identity.Emoji)
	}
	return result
}

// roundMillis converts a monotonic duration to milliseconds rounded to two
// decimals.
func roundMillis(d time.Duration) float64 {
	ms := float64(d.Nanoseconds()) / 1e6
	return math.Round(ms*100) / 100
}

func strPtr(s string) *string { return &s }
