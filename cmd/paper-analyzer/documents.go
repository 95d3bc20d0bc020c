package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/gateway"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents ingested by the backend",
	Long: `Documents lists the backend's view of ingested documents. With
--overview it shows aggregate statistics across all documents instead.`,
	RunE: runDocuments,
}

func runDocuments(cmd *cobra.Command, args []string) error {
	overview, _ := cmd.Flags().GetBool("overview")
	client := gateway.New(gatewayConfig())

	if overview {
		ov, err := client.PaperOverview(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Documents: %d\nWords: %d\nCharacters: %d\nLast updated: %s\n",
			ov.TotalDocuments, ov.TotalWords, ov.TotalCharacters, ov.LastUpdated)
		return nil
	}

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents ingested.")
		return nil
	}

	fmt.Printf("%-40s  %-12s  %10s  %8s\n", "ID", "Added", "Characters", "Words")
	for _, d := range docs {
		fmt.Printf("%-40s  %-12s  %10d  %8d\n", d.ID, d.AddedDate, d.ContentLength, d.WordCount)
	}
	fmt.Printf("\n%d documents\n", len(docs))
	return nil
}

func init() {
	documentsCmd.Flags().Bool("overview", false, "show aggregate statistics instead of the document list")

	rootCmd.AddCommand(documentsCmd)
}
