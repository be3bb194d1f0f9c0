// Package pow implements the proof-of-work search that rate limits the
// creation of new blocks.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// zeroPrefix provides the longest run of zero characters a difficulty
// setting can ask for.
const zeroPrefix = "0000000000000000"

// EventHandler defines a function that is called when events occur during
// the proof search.
type EventHandler func(v string, args ...any)

// IsValidProof checks a candidate proof solves the puzzle: the sha256 digest
// of the previous proof concatenated with the candidate, in decimal form,
// must start with difficulty '0' hex characters.
func IsValidProof(prevProof uint64, proof uint64, difficulty int) bool {
	if difficulty < 0 || difficulty > len(zeroPrefix) {
		return false
	}

	guess := fmt.Sprintf("%d%d", prevProof, proof)
	digest := sha256.Sum256([]byte(guess))
	hash := hex.EncodeToString(digest[:])

	return hash[:difficulty] == zeroPrefix[:difficulty]
}

// FindProof searches for a proof that satisfies the difficulty predicate
// relative to the previous block's proof. Candidates are tried in ascending
// order from 0 so the result is reproducible for a given starting point. The
// search checks for cancellation on every iteration since a competing block
// arriving from consensus resolution makes the work worthless.
func FindProof(ctx context.Context, prevProof uint64, difficulty int, ev EventHandler) (uint64, error) {
	ev("pow: FindProof: search started: difficulty[%d]", difficulty)
	defer ev("pow: FindProof: search completed")

	var proof uint64
	var attempts uint64

	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("pow: FindProof: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("pow: FindProof: CANCELLED")
			return 0, ctx.Err()
		}

		if IsValidProof(prevProof, proof, difficulty) {
			ev("pow: FindProof: SOLVED: proof[%d] attempts[%d]", proof, attempts)
			return proof, nil
		}

		proof++
	}
}
