package database

import (
	"errors"
	"fmt"
)

// ErrEmptyChain is returned when the last block is requested from a chain
// holding zero blocks. This should not occur after genesis initialization.
var ErrEmptyChain = errors.New("chain has no blocks")

// ChainError reports a chain validation failure along with the index of the
// first offending block.
type ChainError struct {
	Index uint64
	Err   error
}

// Error implements the error interface.
func (ce *ChainError) Error() string {
	return fmt.Sprintf("chain invalid at block %d: %s", ce.Index, ce.Err)
}

// Unwrap exposes the underlying validation failure.
func (ce *ChainError) Unwrap() error {
	return ce.Err
}

// =============================================================================

// Chain is the ordered history of blocks. It is append-only except for
// whole-chain replacement during consensus resolution. Chain performs no
// locking of its own; the state package owns the lock discipline.
type Chain struct {
	blocks     []Block
	difficulty int
}

// NewChain constructs a chain seeded with the genesis block.
func NewChain(difficulty int) *Chain {
	return &Chain{
		blocks:     []Block{NewGenesisBlock()},
		difficulty: difficulty,
	}
}

// Height returns the number of blocks in the chain.
func (c *Chain) Height() int {
	return len(c.blocks)
}

// Difficulty returns the proof-of-work difficulty the chain validates with.
func (c *Chain) Difficulty() int {
	return c.difficulty
}

// Last returns the most recently appended block.
func (c *Chain) Last() (Block, error) {
	if len(c.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	return c.blocks[len(c.blocks)-1], nil
}

// Blocks returns a copy of the full chain for read-only use.
func (c *Chain) Blocks() []Block {
	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Append adds a block to the end of the chain after validating it against
// the current last block.
func (c *Chain) Append(block Block) error {
	last, err := c.Last()
	if err != nil {
		return err
	}

	if err := block.ValidateBlock(last, c.difficulty); err != nil {
		return err
	}

	c.blocks = append(c.blocks, block)

	return nil
}

// Validate walks the chain checking the hash linkage and proof-of-work
// invariants between every pair of blocks. On failure the returned
// ChainError names the first offending block index.
func (c *Chain) Validate() error {
	return ValidateBlocks(c.blocks, c.difficulty)
}

// Replace swaps the local chain for the candidate blocks. The replacement
// happens only when the candidate validates and is strictly longer than the
// local chain; equal length candidates never win.
func (c *Chain) Replace(blocks []Block) error {
	if len(blocks) <= len(c.blocks) {
		return fmt.Errorf("%w: candidate chain of length %d is not longer than %d", ErrInvalidBlock, len(blocks), len(c.blocks))
	}

	if err := ValidateBlocks(blocks, c.difficulty); err != nil {
		return err
	}

	c.blocks = make([]Block, len(blocks))
	copy(c.blocks, blocks)

	return nil
}

// =============================================================================

// ValidateBlocks checks an arbitrary sequence of blocks forms a valid chain:
// a sentinel genesis block followed by blocks satisfying the hash linkage
// and proof-of-work invariants. Runs in time linear in chain length.
func ValidateBlocks(blocks []Block, difficulty int) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: chain has no blocks", ErrInvalidBlock)
	}

	if err := validateGenesis(blocks[0]); err != nil {
		return &ChainError{Index: 1, Err: err}
	}

	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1], difficulty); err != nil {
			return &ChainError{Index: blocks[i-1].Index + 1, Err: err}
		}
	}

	return nil
}
