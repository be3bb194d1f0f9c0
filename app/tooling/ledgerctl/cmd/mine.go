package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a new block.",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) {
	var result struct {
		Message string         `json:"message"`
		Block   database.Block `json:"block"`
	}

	resp, err := client().R().SetResult(&result).Post("/v1/mine")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("%s: block %d with proof %d and %d transactions\n",
		result.Message, result.Block.Index, result.Block.Proof, len(result.Block.Transactions))
}
