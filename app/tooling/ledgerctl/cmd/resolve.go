package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run consensus resolution against the node's peers.",
	Run:   resolveRun,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRun(cmd *cobra.Command, args []string) {
	var result struct {
		Message  string `json:"message"`
		Replaced bool   `json:"replaced"`
		Length   int    `json:"length"`
	}

	resp, err := client().R().SetResult(&result).Post("/v1/node/resolve")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("%s: length %d\n", result.Message, result.Length)
}
