package state

import (
	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// SubmitTransaction validates a transaction, adds it to the mempool, and
// returns the index of the block that will eventually contain it. That
// return value is a promise, not a confirmation. The transaction is shared
// with the known peers in the background.
func (s *State) SubmitTransaction(tx database.Tx) (uint64, error) {
	next, err := s.absorbTransaction(tx)
	if err != nil {
		return 0, err
	}

	if s.Worker != nil {
		s.Worker.SignalShareTx(tx)
	}

	return next, nil
}

// AbsorbPeerTransaction adds a transaction received from a peer to the
// mempool without re-sharing it, preventing transactions from bouncing
// around the network forever.
func (s *State) AbsorbPeerTransaction(tx database.Tx) (uint64, error) {
	return s.absorbTransaction(tx)
}

// absorbTransaction validates and pools a transaction under the write lock.
func (s *State) absorbTransaction(tx database.Tx) (uint64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.chain.Last()
	if err != nil {
		return 0, err
	}

	count := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: mempool[%d]", tx, count)

	return last.Index + 1, nil
}
