// Package peer maintains the registry of known peer nodes in the network.
package peer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// ErrInvalidAddress is returned when a peer address cannot be normalized.
// The registry is left unchanged.
var ErrInvalidAddress = errors.New("invalid peer address")

// Peer represents information about a node in the network. The Host field is
// the normalized host:port form of the registered address.
type Peer struct {
	Host string
}

// New normalizes an address into a Peer. Addresses are accepted with or
// without a scheme: "http://192.168.0.5:5000" and "192.168.0.5:5000" both
// normalize to "192.168.0.5:5000".
func New(address string) (Peer, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return Peer{}, fmt.Errorf("%w: address is empty", ErrInvalidAddress)
	}

	if !strings.Contains(addr, "//") {
		addr = "//" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return Peer{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	if u.Host == "" {
		return Peer{}, fmt.Errorf("%w: %q has no host", ErrInvalidAddress, address)
	}

	return Peer{Host: u.Host}, nil
}

// Match validates if the specified host matches this peer.
func (p Peer) Match(host string) bool {
	return p.Host == host
}

// String implements the fmt.Stringer interface.
func (p Peer) String() string {
	return p.Host
}

// =============================================================================

// PeerSet represents the set of known peers. The set grows only by explicit
// registration and registration is idempotent.
type PeerSet struct {
	mu  sync.RWMutex
	set map[Peer]struct{}
}

// NewPeerSet constructs a new set to manage peer information.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[Peer]struct{}),
	}
}

// Add inserts a peer into the set, reporting whether the peer was new.
func (ps *PeerSet) Add(peer Peer) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.set[peer]; exists {
		return false
	}

	ps.set[peer] = struct{}{}
	return true
}

// Count returns the number of known peers.
func (ps *PeerSet) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.set)
}

// Copy returns a snapshot of the known peers, excluding the specified host
// so a node never talks to itself.
func (ps *PeerSet) Copy(host string) []Peer {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	var peers []Peer
	for peer := range ps.set {
		if !peer.Match(host) {
			peers = append(peers, peer)
		}
	}

	return peers
}
