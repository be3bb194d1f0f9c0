package peer_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/peer"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestNormalization(t *testing.T) {
	type table struct {
		name    string
		address string
		host    string
		valid   bool
	}

	tt := []table{
		{name: "scheme and port", address: "http://192.168.0.5:5000", host: "192.168.0.5:5000", valid: true},
		{name: "no scheme", address: "192.168.0.5:5000", host: "192.168.0.5:5000", valid: true},
		{name: "hostname", address: "http://node1:9080", host: "node1:9080", valid: true},
		{name: "trailing path", address: "http://node1:9080/v1/chain", host: "node1:9080", valid: true},
		{name: "garbage", address: "not a url", valid: false},
		{name: "empty", address: "", valid: false},
		{name: "whitespace", address: "   ", valid: false},
	}

	t.Log("Given the need to normalize peer addresses.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen registering a %s address.", testID, tst.name)
			{
				pr, err := peer.New(tst.address)

				switch {
				case !tst.valid:
					if !errors.Is(err, peer.ErrInvalidAddress) {
						t.Errorf("\t%s\tTest %d:\tShould reject with ErrInvalidAddress: %v", failed, testID, err)
					} else {
						t.Logf("\t%s\tTest %d:\tShould reject with ErrInvalidAddress.", success, testID)
					}

				case err != nil:
					t.Errorf("\t%s\tTest %d:\tShould accept the address: %v", failed, testID, err)

				case pr.Host != tst.host:
					t.Errorf("\t%s\tTest %d:\tShould normalize to %q: got %q", failed, testID, tst.host, pr.Host)

				default:
					t.Logf("\t%s\tTest %d:\tShould normalize to %q.", success, testID, tst.host)
				}
			}
		}
	}
}

func TestPeerSet(t *testing.T) {
	t.Log("Given the need to maintain a deduplicated peer set.")
	{
		ps := peer.NewPeerSet()

		pr1, err := peer.New("http://node1:9080")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create a peer: %v", failed, err)
		}

		if !ps.Add(pr1) {
			t.Errorf("\t%s\tShould report a new peer as added.", failed)
		} else {
			t.Logf("\t%s\tShould report a new peer as added.", success)
		}

		// Registering the same address in a different written form has no
		// additional effect.
		pr2, err := peer.New("node1:9080")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create a peer: %v", failed, err)
		}

		if ps.Add(pr2) {
			t.Errorf("\t%s\tShould treat re-registration as a no-op.", failed)
		} else {
			t.Logf("\t%s\tShould treat re-registration as a no-op.", success)
		}

		if ps.Count() != 1 {
			t.Errorf("\t%s\tShould hold exactly one peer: got %d", failed, ps.Count())
		} else {
			t.Logf("\t%s\tShould hold exactly one peer.", success)
		}

		if peers := ps.Copy("node1:9080"); len(peers) != 0 {
			t.Errorf("\t%s\tShould exclude the requesting host from copies.", failed)
		} else {
			t.Logf("\t%s\tShould exclude the requesting host from copies.", success)
		}
	}
}
