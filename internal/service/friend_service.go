package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/metrics"
	"github.com/furnet/instance-server/internal/netid"
	"github.com/furnet/instance-server/internal/peer"
	"github.com/furnet/instance-server/internal/storage"
)

// identityFetchTimeout bounds the outbound identity fetch during friend
// registration.
const identityFetchTimeout = 10 * time.Second

// FriendService implements the friend registration workflow: fetch a
// candidate peer's identity, validate it against the local policy, and
// commit a friend link to the directory.
type FriendService struct {
	store   storage.Storage
	client  peer.IdentityClient
	localID string
	// trustedDomain is the hostname suffix peers must match. Empty admits
	// every host.
	trustedDomain string
	metrics       *metrics.Metrics
}

// NewFriendService creates a new FriendService. localID is this instance's
// own derived animal id; it guards against self-registration.
func NewFriendService(store storage.Storage, client peer.IdentityClient, localID, trustedDomain string, m *metrics.Metrics) *FriendService {
	return &FriendService{
		store:         store,
		client:        client,
		localID:       localID,
		trustedDomain: trustedDomain,
		metrics:       m,
	}
}

// RegisterFriend fetches the identity of the instance at candidateURL and,
// if it passes every policy check, appends a friend link and returns it.
// The checks run in a fixed order so a multiply-invalid request always
// reports the same error: unreachable, invalid response, self, duplicate,
// directory full, untrusted domain. No state is mutated on failure.
func (s *FriendService) RegisterFriend(ctx context.Context, candidateURL string) (*domain.FriendLink, error) {
	normalized, _, err := netid.NormalizeInstanceURL(candidateURL)
	if err != nil {
		return nil, s.reject(fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, identityFetchTimeout)
	defer cancel()

	identity, err := s.client.FetchIdentity(fetchCtx, normalized)
	if err != nil {
		return nil, s.reject(err)
	}

	if identity.ID == "" || identity.Name == "" || identity.InstanceURL == "" {
		return nil, s.reject(fmt.Errorf("%w: identity document is missing id, name or instance_url", domain.ErrInvalidPeerResponse))
	}

	if identity.ID == s.localID {
		return nil, s.reject(fmt.Errorf("%w: %q is this instance", domain.ErrSelfFriend, identity.ID))
	}

	if err := s.checkDirectory(ctx, identity.ID); err != nil {
		return nil, s.reject(err)
	}

	_, host, err := netid.NormalizeInstanceURL(identity.InstanceURL)
	if err != nil {
		return nil, s.reject(fmt.Errorf("%w: reported instance_url %q: %v", domain.ErrInvalidPeerResponse, identity.InstanceURL, err))
	}
	if !netid.TrustedHost(host, s.trustedDomain) {
		return nil, s.reject(fmt.Errorf("%w: %q does not match suffix %q", domain.ErrUntrustedDomain, host, s.trustedDomain))
	}

	return s.commit(ctx, &domain.FriendLink{
		UniqueID: identity.ID,
		DNSName:  host,
		Name:     identity.Name,
	})
}

// RegisterFriendDirect appends a friend link from caller-supplied peer data,
// skipping the network fetch and the self check. Duplicate, capacity and
// trust policy still apply, in that order.
func (s *FriendService) RegisterFriendDirect(ctx context.Context, uniqueID, dnsName, name string) (*domain.FriendLink, error) {
	if uniqueID == "" || dnsName == "" || name == "" {
		return nil, s.reject(fmt.Errorf("%w: unique_id, dns_name and name are required", domain.ErrInvalidInput))
	}

	if err := s.checkDirectory(ctx, uniqueID); err != nil {
		return nil, s.reject(err)
	}

	if !netid.TrustedHost(dnsName, s.trustedDomain) {
		return nil, s.reject(fmt.Errorf("%w: %q does not match suffix %q", domain.ErrUntrustedDomain, dnsName, s.trustedDomain))
	}

	return s.commit(ctx, &domain.FriendLink{
		UniqueID: uniqueID,
		DNSName:  dnsName,
		Name:     name,
	})
}

// ListFriends returns the current friend directory.
func (s *FriendService) ListFriends(ctx context.Context) ([]*domain.FriendLink, error) {
	return s.store.ListFriends(ctx)
}

// checkDirectory applies the duplicate and capacity checks, duplicate first.
func (s *FriendService) checkDirectory(ctx context.Context, uniqueID string) error {
	exists, err := s.store.HasFriend(ctx, uniqueID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateFriend, uniqueID)
	}

	count, err := s.store.CountFriends(ctx)
	if err != nil {
		return err
	}
	if count >= domain.MaxFriends {
		return fmt.Errorf("%w: limit of %d reached", domain.ErrDirectoryFull, domain.MaxFriends)
	}

	return nil
}

// commit stamps and appends the link. The store re-checks duplicate and
// capacity under its write lock, so a racing registration still fails with
// the right error instead of corrupting the directory.
func (s *FriendService) commit(ctx context.Context, link *domain.FriendLink) (*domain.FriendLink, error) {
	link.ConnectedAt = time.Now().UTC()
	if err := s.store.AddFriend(ctx, link); err != nil {
		return nil, s.reject(err)
	}
	s.metrics.FriendsRegistered.Inc()
	return link, nil
}

// reject counts the rejection and passes the error through.
func (s *FriendService) reject(err error) error {
	s.metrics.FriendRegisterErrors.WithLabelValues(rejectReason(err)).Inc()
	return err
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrPeerUnreachable):
		return "peer_unreachable"
	case errors.Is(err, domain.ErrInvalidPeerResponse):
		return "invalid_peer_response"
	case errors.Is(err, domain.ErrSelfFriend):
		return "self_friend"
	case errors.Is(err, domain.ErrDuplicateFriend):
		return "duplicate"
	case errors.Is(err, domain.ErrDirectoryFull):
		return "directory_full"
	case errors.Is(err, domain.ErrUntrustedDomain):
		return "untrusted_domain"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
