// Package metrics exposes prometheus collectors for the instance API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors used by the friend and health workflows.
type Metrics struct {
	FriendsRegistered    prometheus.Counter
	FriendRegisterErrors *prometheus.CounterVec
	PeerProbes           *prometheus.CounterVec
	PeerProbeDuration    prometheus.Histogram
}

// New registers the instance collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FriendsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "furnet_friends_registered_total",
			Help: "Number of friend links committed to the directory.",
		}),
		FriendRegisterErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "furnet_friend_register_errors_total",
			Help: "Number of rejected friend registrations by reason.",
		}, []string{"reason"}),
		PeerProbes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "furnet_peer_probes_total",
			Help: "Number of peer health probes by outcome.",
		}, []string{"outcome"}),
		PeerProbeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "furnet_peer_probe_duration_seconds",
			Help:    "Latency of peer health probes.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
