// This program provides an admin CLI for talking to a running ledger node.
package main

import "github.com/ardanlabs/ledger/app/tooling/ledgerctl/cmd"

func main() {
	cmd.Execute()
}
