package pow_test

import (
	"context"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/pow"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func nopEv(v string, args ...any) {}

func TestFindProof(t *testing.T) {
	t.Log("Given the need to find proofs that satisfy the difficulty predicate.")
	{
		for _, prevProof := range []uint64{1, 42, 100_000} {
			t.Logf("\tWhen searching relative to previous proof %d.", prevProof)
			{
				const difficulty = 2

				proof, err := pow.FindProof(context.Background(), prevProof, difficulty, nopEv)
				if err != nil {
					t.Fatalf("\t%s\tShould be able to find a proof: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to find a proof.", success)

				if !pow.IsValidProof(prevProof, proof, difficulty) {
					t.Errorf("\t%s\tShould satisfy the difficulty predicate: proof[%d]", failed, proof)
				} else {
					t.Logf("\t%s\tShould satisfy the difficulty predicate.", success)
				}
			}
		}
	}
}

func TestFindProofDeterministic(t *testing.T) {
	t.Log("Given the need for a reproducible proof search.")
	{
		const prevProof = 7
		const difficulty = 2

		proof1, err := pow.FindProof(context.Background(), prevProof, difficulty, nopEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to find the first proof: %v", failed, err)
		}

		proof2, err := pow.FindProof(context.Background(), prevProof, difficulty, nopEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to find the second proof: %v", failed, err)
		}

		if proof1 != proof2 {
			t.Errorf("\t%s\tShould find the same proof for the same inputs: got %d and %d", failed, proof1, proof2)
		} else {
			t.Logf("\t%s\tShould find the same proof for the same inputs.", success)
		}
	}
}

func TestFindProofCancellation(t *testing.T) {
	t.Log("Given the need to abort a long running proof search.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// A difficulty this high cannot be solved in test time, so only
		// the cancellation path can return.
		if _, err := pow.FindProof(ctx, 1, 16, nopEv); err == nil {
			t.Fatalf("\t%s\tShould return an error when cancelled.", failed)
		}
		t.Logf("\t%s\tShould return an error when cancelled.", success)
	}
}

func TestIsValidProofDifficulty(t *testing.T) {
	t.Log("Given the need to validate the difficulty predicate directly.")
	{
		const prevProof = 100
		const difficulty = 3

		// Brute force a known good proof, then check its digest shape.
		proof, err := pow.FindProof(context.Background(), prevProof, difficulty, nopEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to find a proof: %v", failed, err)
		}

		if !pow.IsValidProof(prevProof, proof, difficulty) {
			t.Fatalf("\t%s\tShould report the found proof as valid.", failed)
		}
		t.Logf("\t%s\tShould report the found proof as valid.", success)

		if pow.IsValidProof(prevProof, proof, 17) {
			t.Errorf("\t%s\tShould reject an out of range difficulty.", failed)
		} else {
			t.Logf("\t%s\tShould reject an out of range difficulty.", success)
		}
	}
}
