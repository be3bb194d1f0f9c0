package mempool_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func tx(t *testing.T, sender string, amount uint) database.Tx {
	t.Helper()

	tx, err := database.NewTx(sender, "recipient", amount)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	return tx
}

func TestAddDrain(t *testing.T) {
	t.Log("Given the need to pool and drain transactions.")
	{
		mp := mempool.New()

		txs := []database.Tx{
			tx(t, "alice", 5),
			tx(t, "bob", 10),
			tx(t, "carol", 15),
		}

		for i, tr := range txs {
			if count := mp.Add(tr); count != i+1 {
				t.Errorf("\t%s\tShould report a count of %d: got %d", failed, i+1, count)
			}
		}
		t.Logf("\t%s\tShould report the growing pool count.", success)

		drained := mp.Drain()
		if len(drained) != len(txs) {
			t.Fatalf("\t%s\tShould drain all %d transactions: got %d", failed, len(txs), len(drained))
		}
		t.Logf("\t%s\tShould drain all the transactions.", success)

		for i := range txs {
			if drained[i] != txs[i] {
				t.Errorf("\t%s\tShould preserve FIFO order at position %d.", failed, i)
			}
		}
		t.Logf("\t%s\tShould preserve FIFO order.", success)

		if mp.Count() != 0 {
			t.Errorf("\t%s\tShould leave the pool empty: got %d", failed, mp.Count())
		} else {
			t.Logf("\t%s\tShould leave the pool empty.", success)
		}
	}
}

func TestRestoreOrdering(t *testing.T) {
	t.Log("Given transactions drained by a mine that lost the race.")
	{
		mp := mempool.New()

		first := tx(t, "alice", 5)
		second := tx(t, "bob", 10)
		mp.Add(first)
		mp.Add(second)

		drained := mp.Drain()

		// A new transaction arrives while the drained ones are in flight.
		late := tx(t, "carol", 15)
		mp.Add(late)

		mp.Restore(drained)

		got := mp.Copy()
		if len(got) != 3 {
			t.Fatalf("\t%s\tShould hold all 3 transactions: got %d", failed, len(got))
		}
		t.Logf("\t%s\tShould hold all 3 transactions.", success)

		if got[0] != first || got[1] != second || got[2] != late {
			t.Errorf("\t%s\tShould requeue the drained transactions ahead of later arrivals.", failed)
		} else {
			t.Logf("\t%s\tShould requeue the drained transactions ahead of later arrivals.", success)
		}
	}
}

func TestCopyIsSnapshot(t *testing.T) {
	t.Log("Given the need for read-only snapshots of the pool.")
	{
		mp := mempool.New()
		mp.Add(tx(t, "alice", 5))

		snap := mp.Copy()
		snap[0].Amount = 999

		if mp.Copy()[0].Amount != 5 {
			t.Errorf("\t%s\tShould not let a snapshot mutate the pool.", failed)
		} else {
			t.Logf("\t%s\tShould not let a snapshot mutate the pool.", success)
		}
	}
}
