package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    uint
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node's mempool.",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Sender of the transaction.")
	sendCmd.Flags().StringVarP(&recipient, "to", "t", "", "Recipient of the transaction.")
	sendCmd.Flags().UintVarP(&amount, "amount", "a", 0, "Amount to transfer.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}

func sendRun(cmd *cobra.Command, args []string) {
	body := struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Amount    uint   `json:"amount"`
	}{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	var result struct {
		Status     string `json:"status"`
		BlockIndex uint64 `json:"block_index"`
	}

	resp, err := client().R().SetBody(body).SetResult(&result).Post("/v1/tx/submit")
	if err != nil {
		log.Fatal(err)
	}
	if resp.IsError() {
		log.Fatalf("node returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("%s: will be included in block %d\n", result.Status, result.BlockIndex)
}
