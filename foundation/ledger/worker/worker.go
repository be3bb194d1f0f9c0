// Package worker implements mining, consensus resolution, and transaction
// sharing for the ledger node.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
)

// resolveInterval represents the interval for asking peers for a longer
// chain. Chains diverge between intervals by design; this pull is the only
// reconciliation mechanism.
const resolveInterval = time.Minute

// maxTxShareRequests represents the max number of share requests that can be
// outstanding before new ones are dropped.
const maxTxShareRequests = 100

// Sharer represents the behavior required to push a transaction to a peer.
type Sharer interface {
	ShareTx(ctx context.Context, pr peer.Peer, tx database.Tx) error
}

// =============================================================================

// Worker manages the background workflows for the ledger.
type Worker struct {
	state        *state.State
	sharer       Sharer
	wg           sync.WaitGroup
	ticker       *time.Ticker
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan bool
	txSharing    chan database.Tx
	evHandler    state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, sharer Sharer, evHandler state.EventHandler) {
	w := Worker{
		state:        st,
		sharer:       sharer,
		ticker:       time.NewTicker(resolveInterval),
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan bool, 1),
		txSharing:    make(chan database.Tx, maxTxShareRequests),
		evHandler:    evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
		w.resolveOperations,
		w.shareTxOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()
	w.SignalCancelMining()

	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation function
// to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- true:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// SignalShareTx signals a share transaction operation. If maxTxShareRequests
// signals exist in the channel, this request is dropped.
func (w *Worker) SignalShareTx(tx database.Tx) {
	select {
	case w.txSharing <- tx:
		w.evHandler("worker: SignalShareTx: share Tx signaled")
	default:
		w.evHandler("worker: SignalShareTx: queue full, transaction won't be shared")
	}
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
