package worker

import (
	"context"
	"time"
)

// resolveTimeout bounds a full pass over the known peers.
const resolveTimeout = 30 * time.Second

// resolveOperations periodically runs consensus resolution against the
// known peers so a node that fell behind catches up without waiting for an
// explicit resolve call.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// runResolveOperation performs one consensus resolution pass.
func (w *Worker) runResolveOperation() {
	w.evHandler("worker: runResolveOperation: started")
	defer w.evHandler("worker: runResolveOperation: completed")

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	replaced, length, err := w.state.Resolve(ctx)
	if err != nil {
		w.evHandler("worker: runResolveOperation: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runResolveOperation: replaced[%v] length[%d]", replaced, length)
}
