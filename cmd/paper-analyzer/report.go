// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/analysis"
	"github.com/pdiddy/paper-analyzer/internal/keywords"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Show derived analytics for a stored paper",
	Long: `Report derives analytics from a paper's extracted text: a summary,
character and word counts, ranked keywords, and the similarity indicator
with its pie-chart geometry. Everything is computed locally from the
catalog; the backend is not contacted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper id %q", args[0])
	}
	radius, _ := cmd.Flags().GetFloat64("radius")

	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	paper, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("paper %d is not in the catalog", id)
	}

	fmt.Printf("%s (%s, uploaded %s)\n\n", paper.Title, paper.Authors, paper.DateUploaded)
	fmt.Printf("Summary:\n%s\n\n", analysis.Summary(paper))

	stats := analysis.TextStats(paper)
	fmt.Printf("Characters: %d\nWords: %d\n\n", stats.CharCount, stats.WordCount)

	kws := keywords.Extract(paper.ExtractedText)
	if len(kws) > 0 {
		fmt.Println("Keywords:")
		for _, kw := range kws {
			fmt.Printf("  %2d. %-20s (%d)\n", kw.Rank, kw.Term, kw.Count)
		}
		fmt.Println()
	}

	score := analysis.SimilarityScore(paper)
	arcs := analysis.PieArcs(score, radius)
	fmt.Printf("Similarity: %d%% (%d%% original)\n", score, 100-score)
	fmt.Printf("Pie geometry at radius %.0f: circumference %.2f, plagiarism offset %.2f, original offset %.2f\n",
		radius, arcs.Circumference, arcs.PlagiarismOffset, arcs.OriginalOffset)

	if paper.Answer != nil {
		fmt.Printf("\nQ: %s\nA: %s\n", paper.Answer.Question, paper.Answer.Answer)
	}
	return nil
}

func init() {
	reportCmd.Flags().Float64("radius", 88, "pie chart radius for arc geometry")

	rootCmd.AddCommand(reportCmd)
}
