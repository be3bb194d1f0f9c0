// Package private maintains the group of handlers for peer to peer access.
package private

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of peer facing endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Chain returns the full chain so a peer can run consensus resolution
// against it.
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

// Status returns the chain head and the known peer list.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest, err := h.State.RetrieveLatestBlock()
	if err != nil {
		return err
	}

	peers := h.State.RetrieveKnownPeers()
	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}

	resp := struct {
		LatestBlockHash   string   `json:"latest_block_hash"`
		LatestBlockNumber uint64   `json:"latest_block_number"`
		KnownPeers        []string `json:"known_peers"`
	}{
		LatestBlockHash:   latest.Hash(),
		LatestBlockNumber: latest.Index,
		KnownPeers:        hosts,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitPeerTx accepts a transaction shared by a peer. The transaction is
// pooled without being re-shared so it doesn't bounce around the network.
func (h Handlers) SubmitPeerTx(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx database.Tx
	if err := web.Decode(r, &tx); err != nil {
		return err
	}

	h.Log.Infow("add peer tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	if _, err := h.State.AbsorbPeerTransaction(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// AddPeer records the calling node in this node's registry.
func (h Handlers) AddPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Host string `json:"host"`
	}
	if err := web.Decode(r, &body); err != nil {
		return err
	}

	pr, err := peer.New(body.Host)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.State.AddKnownPeer(pr)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "peer added",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
