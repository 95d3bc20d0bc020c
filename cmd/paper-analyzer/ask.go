package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/gateway"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the backend's LLM a question about ingested documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := gateway.New(gatewayConfig())

		pair, err := client.AskQuestion(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Q: %s\nA: %s\n", pair.Question, pair.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
