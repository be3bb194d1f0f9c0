// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/mempool"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
)

// EventHandler defines a function that is called when events occur in the
// processing of mining and resolving blocks.
type EventHandler func(v string, args ...any)

// Fetcher defines the function the consensus resolver uses to retrieve a
// peer's chain. It is supplied by the network layer.
type Fetcher func(ctx context.Context, pr peer.Peer) ([]database.Block, error)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining, consensus resolution, and
// transaction sharing.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
	SignalShareTx(tx database.Tx)
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	Host       string
	Genesis    genesis.Genesis
	KnownPeers *peer.PeerSet
	Fetcher    Fetcher
	EvHandler  EventHandler
}

// State manages the ledger: the chain and the mempool are owned exclusively
// by this value and all mutation flows through its operations under a
// single-writer lock discipline.
type State struct {
	host      string
	genesis   genesis.Genesis
	fetcher   Fetcher
	evHandler EventHandler

	mu         sync.RWMutex
	chain      *database.Chain
	mempool    *mempool.Mempool
	knownPeers *peer.PeerSet

	Worker Worker
}

// New constructs a new ledger state seeded with the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	ev("state: New: creating genesis block: difficulty[%d]", cfg.Genesis.Difficulty)

	state := State{
		host:      cfg.Host,
		genesis:   cfg.Genesis,
		fetcher:   cfg.Fetcher,
		evHandler: ev,

		chain:      database.NewChain(cfg.Genesis.Difficulty),
		mempool:    mempool.New(),
		knownPeers: knownPeers,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
