package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the node's chain.",
	Run:   validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) {
	var result struct {
		Valid       bool   `json:"valid"`
		FailedIndex uint64 `json:"failed_index"`
		Error       string `json:"error"`
	}

	resp, err := client().R().SetResult(&result).Get("/v1/chain/validate")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	if result.Valid {
		fmt.Println("chain is valid")
		return
	}

	fmt.Printf("chain is invalid at block %d: %s\n", result.FailedIndex, result.Error)
}
