// Package cmd contains the ledgerctl commands.
package cmd

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var url string

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Admin tooling for a ledger node",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// client constructs the rest client the commands share.
func client() *resty.Client {
	return resty.New().
		SetBaseURL(url).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
}
