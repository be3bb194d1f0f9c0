// Package public maintains the group of handlers for public client access.
package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// mineRetries bounds how often a synchronous mine call retries after losing
// the optimistic race against a chain update.
const mineRetries = 3

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return err
	}

	tx, err := database.NewTx(ntx.Sender, ntx.Recipient, ntx.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	blockIndex, err := h.State.SubmitTransaction(tx)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status     string `json:"status"`
		BlockIndex uint64 `json:"block_index"`
	}{
		Status:     "transaction added to mempool",
		BlockIndex: blockIndex,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mine performs a mining operation inline and responds with the new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	for i := 0; i < mineRetries; i++ {
		block, err := h.State.MineNewBlock(ctx)
		switch {
		case err == nil:
			resp := struct {
				Message string         `json:"message"`
				Block   database.Block `json:"block"`
			}{
				Message: "new block mined",
				Block:   block,
			}
			return web.Respond(ctx, w, resp, http.StatusCreated)

		case errors.Is(err, state.ErrChainAdvanced):

			// The chain moved while the proof was being searched. The
			// transactions are still pooled, try again from the new head.
			continue

		case errors.Is(err, state.ErrNoTransactions):
			return errs.NewTrusted(err, http.StatusBadRequest)

		default:
			return err
		}
	}

	return errs.NewTrusted(errors.New("mining retries exhausted"), http.StatusConflict)
}

// SignalMine asks the background worker to start a mining operation and
// returns immediately.
func (h Handlers) SignalMine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Chain returns the full chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	resp := struct {
		Chain  []database.Block `json:"chain"`
		Length int              `json:"length"`
	}{
		Chain:  blocks,
		Length: len(blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Validate walks the local chain checking every invariant.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid       bool   `json:"valid"`
		FailedIndex uint64 `json:"failed_index,omitempty"`
		Error       string `json:"error,omitempty"`
	}{
		Valid: true,
	}

	if err := h.State.ValidateChain(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()

		var ce *database.ChainError
		if errors.As(err, &ce) {
			resp.FailedIndex = ce.Index
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Genesis returns the genesis configuration.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// RegisterNodes adds new peers to the node registry.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var rn registerNodes
	if err := web.Decode(r, &rn); err != nil {
		return err
	}

	for _, address := range rn.Nodes {
		pr, err := peer.New(address)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}

		if h.State.AddKnownPeer(pr) {
			h.Log.Infow("register node", "traceid", v.TraceID, "host", pr.Host)
		}
	}

	resp := struct {
		Status     string `json:"status"`
		TotalNodes int    `json:"total_nodes"`
	}{
		Status:     "new nodes have been added",
		TotalNodes: h.State.KnownPeersCount(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// NodeList returns the set of known peers.
func (h Handlers) NodeList(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	peers := h.State.RetrieveKnownPeers()

	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}

	resp := struct {
		Nodes []string `json:"nodes"`
		Total int      `json:"total"`
	}{
		Nodes: hosts,
		Total: len(hosts),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Resolve runs the consensus algorithm against the known peers.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, length, err := h.State.Resolve(ctx)
	if err != nil {
		return err
	}

	message := "our chain is authoritative"
	if replaced {
		message = "our chain was replaced"
	}

	resp := struct {
		Message  string `json:"message"`
		Replaced bool   `json:"replaced"`
		Length   int    `json:"length"`
	}{
		Message:  message,
		Replaced: replaced,
		Length:   length,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
