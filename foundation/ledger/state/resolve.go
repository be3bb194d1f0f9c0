package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// ErrNoFetcher is returned when consensus resolution is requested but no
// chain fetch function was configured.
var ErrNoFetcher = errors.New("no chain fetcher configured")

// Resolve implements the consensus algorithm: ask every known peer for its
// chain and replace the local chain when a strictly longer valid one exists.
// Peer fetches run lock free; only the final replacement takes the write
// lock. Returns whether the chain was replaced and the resulting length.
func (s *State) Resolve(ctx context.Context) (bool, int, error) {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	if s.fetcher == nil {
		return false, s.ChainHeight(), ErrNoFetcher
	}

	// The local height only filters candidates early. The decisive length
	// comparison happens again under the lock during Replace.
	localHeight := s.ChainHeight()

	var best []database.Block
	bestLen := localHeight

	for _, pr := range s.RetrieveKnownPeers() {
		blocks, err := s.fetcher(ctx, pr)
		if err != nil {

			// An unreachable peer never fails the resolution as a whole.
			s.evHandler("state: Resolve: peer[%s]: unreachable: %s", pr, err)
			continue
		}

		if len(blocks) <= bestLen {
			s.evHandler("state: Resolve: peer[%s]: chain[%d] not longer than best[%d]", pr, len(blocks), bestLen)
			continue
		}

		if err := database.ValidateBlocks(blocks, s.genesis.Difficulty); err != nil {
			s.evHandler("state: Resolve: peer[%s]: invalid chain: %s", pr, err)
			continue
		}

		best = blocks
		bestLen = len(blocks)
	}

	if best == nil {
		s.evHandler("state: Resolve: local chain is authoritative: length[%d]", localHeight)
		return false, s.ChainHeight(), nil
	}

	// An in-flight proof search is racing a losing fork now. Cancel it
	// before taking the lock so the miner does not burn cycles on a stale
	// parent.
	if s.Worker != nil {
		s.Worker.SignalCancelMining()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.chain.Replace(best); err != nil {

		// The local chain advanced past the candidate while fetching. The
		// local chain is kept, which is the correct outcome.
		s.evHandler("state: Resolve: replace rejected: %s", err)
		return false, s.chain.Height(), nil
	}

	s.evHandler("state: Resolve: chain replaced: length[%d]", s.chain.Height())

	return true, s.chain.Height(), nil
}
