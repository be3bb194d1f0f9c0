// Package database maintains the ledger data model: transactions, blocks,
// the canonical block hash, and the in-memory chain with its validation
// rules.
package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/pow"
)

// ZeroHash is the sentinel previous hash carried by the genesis block.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// GenesisProof is the sentinel proof carried by the genesis block. The
// genesis block is exempt from the difficulty predicate.
const GenesisProof uint64 = 1

// ErrInvalidBlock is returned when a block fails the append-time invariants.
// The block is discarded and the chain is left untouched.
var ErrInvalidBlock = errors.New("invalid block")

// Block represents a group of transactions bound to its predecessor by hash.
// The fields are declared in sorted json key order so the marshaled form is
// the canonical encoding for hashing. A Block is immutable once appended.
type Block struct {
	Index         uint64 `json:"index"`
	PrevBlockHash string `json:"previous_hash"`
	Proof         uint64 `json:"proof"`
	TimeStamp     uint64 `json:"timestamp"`
	Transactions  []Tx   `json:"transactions"`
}

// NewGenesisBlock constructs the first block in a chain with the sentinel
// linkage fields.
func NewGenesisBlock() Block {
	return Block{
		Index:         1,
		PrevBlockHash: ZeroHash,
		Proof:         GenesisProof,
		TimeStamp:     uint64(time.Now().UTC().Unix()),
		Transactions:  []Tx{},
	}
}

// NewBlock constructs the next block after prevBlock carrying the specified
// proof and transactions.
func NewBlock(prevBlock Block, proof uint64, txs []Tx) Block {
	if txs == nil {
		txs = []Tx{}
	}

	return Block{
		Index:         prevBlock.Index + 1,
		PrevBlockHash: prevBlock.Hash(),
		Proof:         proof,
		TimeStamp:     uint64(time.Now().UTC().Unix()),
		Transactions:  txs,
	}
}

// Hash returns the unique hash for the block: a sha256 digest over the
// canonical json encoding, as a 64 character lowercase hex string. Every
// field of the block, including the full transaction list, feeds the digest
// so any single change to any field changes the output.
func (b Block) Hash() string {
	data, err := json.Marshal(b)
	if err != nil {
		return ZeroHash
	}

	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// ValidateBlock checks a candidate block can follow prevBlock in a chain
// with the specified difficulty.
func (b Block) ValidateBlock(prevBlock Block, difficulty int) error {
	if b.Index != prevBlock.Index+1 {
		return fmt.Errorf("%w: block is not the next index, got %d, exp %d", ErrInvalidBlock, b.Index, prevBlock.Index+1)
	}

	if b.PrevBlockHash != prevBlock.Hash() {
		return fmt.Errorf("%w: previous hash doesn't match our known parent, got %s, exp %s", ErrInvalidBlock, b.PrevBlockHash, prevBlock.Hash())
	}

	if !pow.IsValidProof(prevBlock.Proof, b.Proof, difficulty) {
		return fmt.Errorf("%w: proof %d does not satisfy the difficulty", ErrInvalidBlock, b.Proof)
	}

	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidBlock, err)
		}
	}

	return nil
}

// validateGenesis checks the first block of a chain carries the sentinel
// values.
func validateGenesis(b Block) error {
	if b.Index != 1 {
		return fmt.Errorf("%w: genesis block index is %d, exp 1", ErrInvalidBlock, b.Index)
	}

	if b.PrevBlockHash != ZeroHash {
		return fmt.Errorf("%w: genesis block previous hash is not the sentinel", ErrInvalidBlock)
	}

	if b.Proof != GenesisProof {
		return fmt.Errorf("%w: genesis block proof is %d, exp %d", ErrInvalidBlock, b.Proof, GenesisProof)
	}

	return nil
}
