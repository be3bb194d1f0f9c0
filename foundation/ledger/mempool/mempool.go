// Package mempool maintains the pool of transactions waiting to be included
// in the next mined block.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// Mempool represents a FIFO cache of pending transactions. The pool is owned
// exclusively by the local node and is drained atomically when a block is
// mined.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the pool and returns the new pool length.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Drain atomically removes and returns all pending transactions. Called once
// per successful mine operation.
func (mp *Mempool) Drain() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	txs := mp.pool
	mp.pool = nil

	return txs
}

// Restore re-queues transactions ahead of anything that arrived since they
// were drained. Used when a mined block loses the race against a consensus
// replacement so the transactions are not lost.
func (mp *Mempool) Restore(txs []database.Tx) {
	if len(txs) == 0 {
		return
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(append(make([]database.Tx, 0, len(txs)+len(mp.pool)), txs...), mp.pool...)
}

// Copy returns a read-only snapshot of the pending transactions.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.Tx, len(mp.pool))
	copy(txs, mp.pool)

	return txs
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
