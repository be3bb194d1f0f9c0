package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the node's chain.",
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) {
	var result struct {
		Chain  []database.Block `json:"chain"`
		Length int              `json:"length"`
	}

	resp, err := client().R().SetResult(&result).Get("/v1/chain")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("chain length: %d\n", result.Length)
	for _, block := range result.Chain {
		fmt.Printf("block %d: proof[%d] txs[%d] prev[%s]\n", block.Index, block.Proof, len(block.Transactions), block.PrevBlockHash[:16])
	}
}
