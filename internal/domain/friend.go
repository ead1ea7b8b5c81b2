package domain

import "time"

// MaxFriends is the maximum number of friend links one instance stores.
const MaxFriends = 1000

// FriendLink is a directed acceptance record for a peer instance.
// It is appended once and never mutated afterwards.
type FriendLink struct {
	// UniqueID is the peer's Animal.ID ("domain:animal-name").
	UniqueID string `json:"unique_id"`
	// DNSName is the peer's bare hostname, without scheme or port.
	DNSName string `json:"dns_name"`
	// Name is the peer's animal name.
	Name string `json:"name"`
	// ConnectedAt is when the friendship was established.
	ConnectedAt time.Time `json:"connected_at"`
}

// CreateFriendRequest is the body of POST /friends. The caller supplies
// already-verified peer data.
type CreateFriendRequest struct {
	UniqueID string `json:"unique_id"`
	DNSName  string `json:"dns_name"`
	Name     string `json:"name"`
}

// AddFriendRequest is the body of POST /friends/add. The peer's identity
// is fetched from its instance URL before the link is committed.
type AddFriendRequest struct {
	InstanceURL string `json:"instance_url"`
}
