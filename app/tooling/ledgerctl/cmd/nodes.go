package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Manage the node's peer registry.",
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the registered peers.",
	Run:   nodesListRun,
}

var nodesRegisterCmd = &cobra.Command{
	Use:   "register [address ...]",
	Short: "Register peer addresses with the node.",
	Args:  cobra.MinimumNArgs(1),
	Run:   nodesRegisterRun,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesRegisterCmd)
}

func nodesListRun(cmd *cobra.Command, args []string) {
	var result struct {
		Nodes []string `json:"nodes"`
		Total int      `json:"total"`
	}

	resp, err := client().R().SetResult(&result).Get("/v1/node/list")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("known peers: %d\n", result.Total)
	for _, host := range result.Nodes {
		fmt.Println(host)
	}
}

func nodesRegisterRun(cmd *cobra.Command, args []string) {
	body := struct {
		Nodes []string `json:"nodes"`
	}{
		Nodes: args,
	}

	var result struct {
		Status     string `json:"status"`
		TotalNodes int    `json:"total_nodes"`
	}

	resp, err := client().R().SetBody(body).SetResult(&result).Post("/v1/node/register")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("%s: total %d\n", result.Status, result.TotalNodes)
}
