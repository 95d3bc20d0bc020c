// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/gateway"
	"github.com/pdiddy/paper-analyzer/internal/upload"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Upload a PDF or image for analysis and store the result",
	Long: `Analyze uploads a document to the analysis backend, which extracts its
text and optionally answers a question about the content. The analyzed
paper is appended to the local catalog.

The file type is taken from --media-type when given, otherwise sniffed
from the file extension. Only PDFs and images are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("question")
	mediaType, _ := cmd.Flags().GetString("media-type")

	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	client := gateway.New(gatewayConfig())
	orch := upload.New(client, store, upload.WithProgress(func(percent int) {
		fmt.Fprintf(os.Stderr, "  %d%%\n", percent)
	}))

	if err := orch.Select(args[0], mediaType); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Uploading %s...\n", args[0])
	paper, err := orch.Start(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Printf("Analyzed %s (paper %d, %d characters extracted)\n",
		paper.Filename, paper.ID, paper.TextLength)
	if paper.Answer != nil {
		fmt.Printf("\nQ: %s\nA: %s\n", paper.Answer.Question, paper.Answer.Answer)
	}
	return nil
}

func init() {
	analyzeCmd.Flags().String("question", "", "question for the backend to answer about the document")
	analyzeCmd.Flags().String("media-type", "", "declared media type (default: sniffed from extension)")

	rootCmd.AddCommand(analyzeCmd)
}
