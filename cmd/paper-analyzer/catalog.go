// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local paper catalog (list, search, remove, export)",
	Long: `Catalog manages the durable collection of analyzed papers. Papers are
listed in the order they were added; removal and export operate on the
stored collection without contacting the backend.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all papers in the catalog",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	printPapers(store.List())
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search papers by title or authors",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	printPapers(store.Search(args[0]))
	return nil
}

// --- remove subcommand ---

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a paper from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper id %q", args[0])
	}

	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, ok := store.Get(id); !ok {
		fmt.Printf("Paper %d is not in the catalog.\n", id)
		return nil
	}
	if err := store.Remove(id); err != nil {
		return err
	}
	fmt.Printf("Removed paper %d.\n", id)
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog with derived keywords to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = viper.GetString("catalog.export_dir")
	}

	store, closeStore, err := openCatalog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeStore()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(dir); err != nil {
			return err
		}
		fmt.Printf("Exported %d papers to %s/export.yaml\n", store.Len(), dir)
	case "json":
		if err := store.ExportJSON(dir); err != nil {
			return err
		}
		fmt.Printf("Exported %d papers to %s/export.json\n", store.Len(), dir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- shared helpers ---

func printPapers(papers []types.Paper) {
	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return
	}

	fmt.Printf("%-15s  %-40s  %-20s  %-12s  %s\n",
		"ID", "Title", "Authors", "Uploaded", "Status")
	for _, p := range papers {
		title := p.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		authors := p.Authors
		if len(authors) > 20 {
			authors = authors[:17] + "..."
		}
		fmt.Printf("%-15d  %-40s  %-20s  %-12s  %s\n",
			p.ID, title, authors, p.DateUploaded, p.Status)
	}
	fmt.Printf("\n%d papers\n", len(papers))
}

func init() {
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("dir", "", "export directory (default: catalog.export_dir from config)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
