// Package nodenet provides the HTTP client used to talk to peer nodes. It
// supplies the chain fetch function the consensus resolver depends on plus
// the transaction and peer sharing calls.
package nodenet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
	"github.com/go-resty/resty/v2"
)

// baseURL is the peer facing API every node exposes on its private host.
const baseURL = "http://%s/v1/node"

// ErrUnreachable is returned when a peer cannot be contacted. Consensus
// resolution skips unreachable peers without failing as a whole.
var ErrUnreachable = errors.New("peer unreachable")

// Status represents information about the state of a peer.
type Status struct {
	LatestBlockHash   string   `json:"latest_block_hash"`
	LatestBlockNumber uint64   `json:"latest_block_number"`
	KnownPeers        []string `json:"known_peers"`
}

// =============================================================================

// Client knows how to talk to the peer facing API of other nodes.
type Client struct {
	rest *resty.Client
}

// New constructs a client for peer communication.
func New(timeout time.Duration) *Client {
	rest := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		rest: rest,
	}
}

// FetchChain retrieves the full chain from the specified peer. This is the
// fetch function the consensus resolver is configured with.
func (c *Client) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	var result struct {
		Chain  []database.Block `json:"chain"`
		Length int              `json:"length"`
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf(baseURL+"/chain", pr.Host))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnreachable, pr.Host, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s: status[%d]", ErrUnreachable, pr.Host, resp.StatusCode())
	}

	return result.Chain, nil
}

// Status retrieves the chain head and peer list from the specified peer.
func (c *Client) Status(ctx context.Context, pr peer.Peer) (Status, error) {
	var status Status

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&status).
		Get(fmt.Sprintf(baseURL+"/status", pr.Host))
	if err != nil {
		return Status{}, fmt.Errorf("%w: %s: %s", ErrUnreachable, pr.Host, err)
	}

	if resp.IsError() {
		return Status{}, fmt.Errorf("%w: %s: status[%d]", ErrUnreachable, pr.Host, resp.StatusCode())
	}

	return status, nil
}

// ShareTx pushes a transaction to the specified peer's mempool.
func (c *Client) ShareTx(ctx context.Context, pr peer.Peer, tx database.Tx) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(tx).
		Post(fmt.Sprintf(baseURL+"/tx/submit", pr.Host))
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrUnreachable, pr.Host, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: %s: status[%d]", ErrUnreachable, pr.Host, resp.StatusCode())
	}

	return nil
}

// RegisterSelf announces this node's host to the specified peer so the peer
// can add it to its own registry.
func (c *Client) RegisterSelf(ctx context.Context, pr peer.Peer, host string) error {
	body := struct {
		Host string `json:"host"`
	}{
		Host: host,
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf(baseURL+"/peers", pr.Host))
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrUnreachable, pr.Host, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: %s: status[%d]", ErrUnreachable, pr.Host, resp.StatusCode())
	}

	return nil
}
