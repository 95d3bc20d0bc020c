package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/gateway"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the backend and its LLM runtime",
	Long: `Status probes the backend's health endpoint and its Ollama runtime.
An unreachable backend is reported as a warning; status always exits
zero so it can run from scripts and prompts.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := gateway.New(gatewayConfig())

	health, err := client.Health(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: backend unreachable: %v\n", err)
		return nil
	}
	fmt.Printf("Backend: %s (%s)\n", health.Status, health.Message)

	ollama, err := client.OllamaStatus(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ollama status unavailable: %v\n", err)
		return nil
	}
	fmt.Printf("Ollama: %s (%s)\n", ollama.Status, ollama.Message)
	if ollama.CurrentModel != "" {
		fmt.Printf("Model: %s\n", ollama.CurrentModel)
	}
	if len(ollama.AvailableModels) > 0 {
		fmt.Printf("Available: %s\n", strings.Join(ollama.AvailableModels, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
