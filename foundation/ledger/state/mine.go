package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/pow"
)

// ErrNoTransactions is returned when a block is requested to be mined and
// there are no transactions in the mempool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ErrChainAdvanced is returned when the chain changed underneath an
// in-flight proof search. The mined proof belongs to a stale parent and the
// operation should be retried against the new chain head.
var ErrChainAdvanced = errors.New("chain advanced during mining")

// MineNewBlock attempts to create a new block with a proper proof that can
// become the next block in the chain. The proof search runs against a
// snapshot of the chain head without holding the lock; the lock is
// re-acquired only to validate-and-append. This can be cancelled.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// Snapshot the chain head. The search below runs lock free so
	// transaction submission and chain queries are not blocked for the
	// duration of the work.
	s.mu.RLock()
	last, err := s.chain.Last()
	s.mu.RUnlock()
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW: parent[%d]", last.Index)

	proof, err := pow.FindProof(ctx, last.Proof, s.genesis.Difficulty, pow.EventHandler(s.evHandler))
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	s.mu.Lock()
	defer s.mu.Unlock()

	// A consensus replacement or a peer block may have advanced the chain
	// while the proof was being searched. The proof is relative to the
	// snapshot parent so it cannot be used against the new head.
	current, err := s.chain.Last()
	if err != nil {
		return database.Block{}, err
	}
	if current.Hash() != last.Hash() {
		s.evHandler("state: MineNewBlock: MINING: chain advanced: parent[%d] now[%d]", last.Index, current.Index)
		return database.Block{}, ErrChainAdvanced
	}

	txs := s.mempool.Drain()

	block := database.NewBlock(last, proof, txs)
	if err := s.chain.Append(block); err != nil {

		// The block was discarded. Return the drained transactions to the
		// pool so they are mined into a later block rather than lost.
		s.mempool.Restore(txs)
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: block[%d] mined: txs[%d]", block.Index, len(block.Transactions))

	return block, nil
}
