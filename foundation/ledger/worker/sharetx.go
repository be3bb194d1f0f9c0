package worker

import (
	"context"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// shareTimeout bounds the push of one transaction to one peer.
const shareTimeout = 5 * time.Second

// shareTxOperations handles sharing new user transactions.
func (w *Worker) shareTxOperations() {
	w.evHandler("worker: shareTxOperations: G started")
	defer w.evHandler("worker: shareTxOperations: G completed")

	for {
		select {
		case tx := <-w.txSharing:
			if !w.isShutdown() {
				w.runShareTxOperation(tx)
			}
		case <-w.shut:
			w.evHandler("worker: shareTxOperations: received shut signal")
			return
		}
	}
}

// runShareTxOperation pushes a transaction to the known peers. A peer that
// cannot be reached just misses the share; it will pick the transaction up
// when the block containing it propagates.
func (w *Worker) runShareTxOperation(tx database.Tx) {
	w.evHandler("worker: runShareTxOperation: started")
	defer w.evHandler("worker: runShareTxOperation: completed")

	if w.sharer == nil {
		return
	}

	for _, pr := range w.state.RetrieveKnownPeers() {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		if err := w.sharer.ShareTx(ctx, pr, tx); err != nil {
			w.evHandler("worker: runShareTxOperation: WARNING: peer[%s]: %s", pr, err)
		}
		cancel()
	}
}
