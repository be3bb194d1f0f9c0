package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/pow"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// difficulty keeps the proof searches in these tests fast.
const difficulty = 1

func nopEv(v string, args ...any) {}

// mineNext finds a proof for the chain head and appends a new block
// carrying the specified transactions.
func mineNext(t *testing.T, chain *database.Chain, txs []database.Tx) database.Block {
	t.Helper()

	last, err := chain.Last()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to read the chain head: %v", failed, err)
	}

	proof, err := pow.FindProof(context.Background(), last.Proof, chain.Difficulty(), nopEv)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to find a proof: %v", failed, err)
	}

	block := database.NewBlock(last, proof, txs)
	if err := chain.Append(block); err != nil {
		t.Fatalf("\t%s\tShould be able to append the block: %v", failed, err)
	}

	return block
}

func testTxs(t *testing.T) []database.Tx {
	t.Helper()

	tx, err := database.NewTx("alice", "bob", 5)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	return []database.Tx{tx}
}

// =============================================================================

func TestNewTxValidation(t *testing.T) {
	type table struct {
		name      string
		sender    string
		recipient string
		amount    uint
		valid     bool
	}

	tt := []table{
		{name: "good", sender: "alice", recipient: "bob", amount: 5, valid: true},
		{name: "zero amount", sender: "alice", recipient: "bob", amount: 0, valid: false},
		{name: "empty sender", sender: "", recipient: "bob", amount: 5, valid: false},
		{name: "empty recipient", sender: "alice", recipient: "", amount: 5, valid: false},
	}

	t.Log("Given the need to validate transactions at construction.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s transaction.", testID, tst.name)
			{
				_, err := database.NewTx(tst.sender, tst.recipient, tst.amount)

				switch {
				case tst.valid && err != nil:
					t.Errorf("\t%s\tTest %d:\tShould accept the transaction: %v", failed, testID, err)
				case !tst.valid && !errors.Is(err, database.ErrInvalidTx):
					t.Errorf("\t%s\tTest %d:\tShould reject with ErrInvalidTx: %v", failed, testID, err)
				default:
					t.Logf("\t%s\tTest %d:\tShould get the expected result.", success, testID)
				}
			}
		}
	}
}

func TestHashDeterminism(t *testing.T) {
	t.Log("Given the need for a deterministic block hash.")
	{
		chain := database.NewChain(difficulty)
		block := mineNext(t, chain, testTxs(t))

		hash := block.Hash()
		if len(hash) != 64 {
			t.Fatalf("\t%s\tShould produce a 64 character hash: got %d", failed, len(hash))
		}
		t.Logf("\t%s\tShould produce a 64 character hash.", success)

		if block.Hash() != hash {
			t.Errorf("\t%s\tShould produce the same hash on repeated calls.", failed)
		} else {
			t.Logf("\t%s\tShould produce the same hash on repeated calls.", success)
		}

		// Change each field in turn and check the hash moves.
		mutations := []database.Block{
			{Index: block.Index + 1, PrevBlockHash: block.PrevBlockHash, Proof: block.Proof, TimeStamp: block.TimeStamp, Transactions: block.Transactions},
			{Index: block.Index, PrevBlockHash: database.ZeroHash, Proof: block.Proof, TimeStamp: block.TimeStamp, Transactions: block.Transactions},
			{Index: block.Index, PrevBlockHash: block.PrevBlockHash, Proof: block.Proof + 1, TimeStamp: block.TimeStamp, Transactions: block.Transactions},
			{Index: block.Index, PrevBlockHash: block.PrevBlockHash, Proof: block.Proof, TimeStamp: block.TimeStamp + 1, Transactions: block.Transactions},
			{Index: block.Index, PrevBlockHash: block.PrevBlockHash, Proof: block.Proof, TimeStamp: block.TimeStamp, Transactions: nil},
		}

		for i, m := range mutations {
			if m.Hash() == hash {
				t.Errorf("\t%s\tMutation %d:\tShould change the hash when a field changes.", failed, i)
			} else {
				t.Logf("\t%s\tMutation %d:\tShould change the hash when a field changes.", success, i)
			}
		}
	}
}

func TestGenesisOnlyChainValidates(t *testing.T) {
	t.Log("Given a chain holding only the genesis block.")
	{
		chain := database.NewChain(difficulty)

		if err := chain.Validate(); err != nil {
			t.Fatalf("\t%s\tShould validate as valid: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate as valid.", success)

		last, err := chain.Last()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to read the chain head: %v", failed, err)
		}

		if last.Index != 1 || last.PrevBlockHash != database.ZeroHash || last.Proof != database.GenesisProof {
			t.Errorf("\t%s\tShould carry the sentinel genesis fields.", failed)
		} else {
			t.Logf("\t%s\tShould carry the sentinel genesis fields.", success)
		}
	}
}

func TestChainAppendAndValidate(t *testing.T) {
	t.Log("Given the need to grow a chain and keep it valid.")
	{
		chain := database.NewChain(difficulty)

		for i := 0; i < 3; i++ {
			mineNext(t, chain, testTxs(t))
		}

		if chain.Height() != 4 {
			t.Fatalf("\t%s\tShould have a chain of length 4: got %d", failed, chain.Height())
		}
		t.Logf("\t%s\tShould have a chain of length 4.", success)

		if err := chain.Validate(); err != nil {
			t.Errorf("\t%s\tShould validate the full chain: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould validate the full chain.", success)
		}
	}
}

func TestAppendRejectsBadBlocks(t *testing.T) {
	t.Log("Given the need to reject blocks that break the invariants.")
	{
		chain := database.NewChain(difficulty)
		last, _ := chain.Last()

		proof, err := pow.FindProof(context.Background(), last.Proof, difficulty, nopEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to find a proof: %v", failed, err)
		}

		t.Log("\tWhen the block index skips ahead.")
		{
			block := database.NewBlock(last, proof, testTxs(t))
			block.Index += 1

			if err := chain.Append(block); !errors.Is(err, database.ErrInvalidBlock) {
				t.Errorf("\t%s\tShould reject with ErrInvalidBlock: %v", failed, err)
			} else {
				t.Logf("\t%s\tShould reject with ErrInvalidBlock.", success)
			}
		}

		t.Log("\tWhen the previous hash doesn't link.")
		{
			block := database.NewBlock(last, proof, testTxs(t))
			block.PrevBlockHash = database.ZeroHash

			if err := chain.Append(block); !errors.Is(err, database.ErrInvalidBlock) {
				t.Errorf("\t%s\tShould reject with ErrInvalidBlock: %v", failed, err)
			} else {
				t.Logf("\t%s\tShould reject with ErrInvalidBlock.", success)
			}
		}

		t.Log("\tWhen the proof doesn't satisfy the difficulty.")
		{
			bad := proof
			for pow.IsValidProof(last.Proof, bad, difficulty) {
				bad++
			}
			block := database.NewBlock(last, bad, testTxs(t))

			if err := chain.Append(block); !errors.Is(err, database.ErrInvalidBlock) {
				t.Errorf("\t%s\tShould reject with ErrInvalidBlock: %v", failed, err)
			} else {
				t.Logf("\t%s\tShould reject with ErrInvalidBlock.", success)
			}
		}

		if chain.Height() != 1 {
			t.Errorf("\t%s\tShould leave the chain untouched: height %d", failed, chain.Height())
		} else {
			t.Logf("\t%s\tShould leave the chain untouched.", success)
		}
	}
}

func TestValidateReportsFirstBadIndex(t *testing.T) {
	t.Log("Given a chain with a block mutated after the fact.")
	{
		chain := database.NewChain(difficulty)
		for i := 0; i < 3; i++ {
			mineNext(t, chain, testTxs(t))
		}

		blocks := chain.Blocks()

		// Tamper with the transactions of block 2 without recomputing the
		// hashes linked into later blocks.
		blocks[1].Transactions = append(blocks[1].Transactions, database.Tx{
			Amount:    1_000_000,
			Recipient: "mallory",
			Sender:    "alice",
			TimeStamp: blocks[1].TimeStamp,
		})

		err := database.ValidateBlocks(blocks, difficulty)
		if err == nil {
			t.Fatalf("\t%s\tShould fail validation.", failed)
		}
		t.Logf("\t%s\tShould fail validation.", success)

		var ce *database.ChainError
		if !errors.As(err, &ce) {
			t.Fatalf("\t%s\tShould report a ChainError: %v", failed, err)
		}

		// The mutation is in block 2 so the break is detected at block 3,
		// the first block whose previous hash no longer matches.
		if ce.Index != 3 {
			t.Errorf("\t%s\tShould name index 3 as the first offender: got %d", failed, ce.Index)
		} else {
			t.Logf("\t%s\tShould name index 3 as the first offender.", success)
		}
	}
}

func TestReplaceRules(t *testing.T) {
	t.Log("Given the need to replace a chain only with a strictly longer valid one.")
	{
		local := database.NewChain(difficulty)
		mineNext(t, local, testTxs(t))

		longer := database.NewChain(difficulty)
		for i := 0; i < 3; i++ {
			mineNext(t, longer, testTxs(t))
		}

		sameLen := database.NewChain(difficulty)
		mineNext(t, sameLen, testTxs(t))

		t.Log("\tWhen the candidate has the same length.")
		{
			if err := local.Replace(sameLen.Blocks()); err == nil {
				t.Errorf("\t%s\tShould reject an equal length candidate.", failed)
			} else {
				t.Logf("\t%s\tShould reject an equal length candidate.", success)
			}
		}

		t.Log("\tWhen the candidate is longer but invalid.")
		{
			blocks := longer.Blocks()
			blocks[2].Proof = blocks[2].Proof + 1

			if err := local.Replace(blocks); err == nil {
				t.Errorf("\t%s\tShould reject an invalid candidate.", failed)
			} else {
				t.Logf("\t%s\tShould reject an invalid candidate.", success)
			}
		}

		t.Log("\tWhen the candidate is longer and valid.")
		{
			if err := local.Replace(longer.Blocks()); err != nil {
				t.Fatalf("\t%s\tShould accept the candidate: %v", failed, err)
			}
			t.Logf("\t%s\tShould accept the candidate.", success)

			if local.Height() != 4 {
				t.Errorf("\t%s\tShould now have length 4: got %d", failed, local.Height())
			} else {
				t.Logf("\t%s\tShould now have length 4.", success)
			}
		}
	}
}
