package state

import (
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
)

// RetrieveChain returns a read-only snapshot of the full chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Blocks()
}

// RetrieveLatestBlock returns the most recently appended block.
func (s *State) RetrieveLatestBlock() (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Last()
}

// ChainHeight returns the current length of the chain.
func (s *State) ChainHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Height()
}

// ValidateChain walks the local chain checking every invariant. The returned
// error is a database.ChainError naming the first offending block index.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Validate()
}

// MempoolCount returns the current number of pending transactions.
func (s *State) MempoolCount() int {
	return s.mempool.Count()
}

// RetrieveMempool returns a snapshot of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveGenesis returns a copy of the genesis configuration.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveHost returns the host this node is running on.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveKnownPeers retrieves a snapshot of the registered peers, excluding
// this node itself.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// AddKnownPeer registers a peer, reporting whether it was new to the set.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	return s.knownPeers.Add(pr)
}

// KnownPeersCount returns the number of registered peers.
func (s *State) KnownPeersCount() int {
	return s.knownPeers.Count()
}
