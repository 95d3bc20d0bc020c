// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-analyzer CLI. It drives
// uploads to the analysis backend, the local paper catalog, derived
// reports, and the backend container lifecycle through subcommands.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/catalog"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const userAgent = "paper-analyzer/0.1"

// rootCmd is the base command for the paper-analyzer CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-analyzer",
	Short: "Upload papers for analysis and manage the local catalog",
	Long: `paper-analyzer uploads PDF and image documents to a local analysis
backend, records the results in a durable catalog, and derives reports
(summaries, keywords, document statistics) from the stored text.

Each concern is a subcommand: analyze uploads a document, catalog manages
stored papers, report derives analytics, ask queries the backend's LLM,
and backend controls the analysis container.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-analyzer.yaml or ~/.config/paper-analyzer/config.yaml)")
	rootCmd.PersistentFlags().String("backend-url", "", "analysis backend base URL (default: http://localhost:8000)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog path (default: catalog/papers.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-analyzer"))
		}
	}

	viper.SetDefault("backend.url", "http://localhost:8000")
	viper.SetDefault("backend.max_retries", 3)
	viper.SetDefault("catalog.backend", string(types.CatalogSQLite))
	viper.SetDefault("catalog.path", filepath.Join("catalog", "papers.db"))
	viper.SetDefault("catalog.export_dir", "catalog")
	viper.SetDefault("container.image", "paper-analyzer-backend:latest")
	viper.SetDefault("container.name", "paper-analyzer-backend")
	viper.SetDefault("container.port", 8000)

	viper.SetEnvPrefix("PAPER_ANALYZER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if url, _ := rootCmd.PersistentFlags().GetString("backend-url"); url != "" {
		viper.Set("backend.url", url)
	}
	if path, _ := rootCmd.PersistentFlags().GetString("catalog"); path != "" {
		viper.Set("catalog.path", path)
	}
}

// gatewayConfig assembles the backend client settings from config.
func gatewayConfig() types.GatewayConfig {
	return types.GatewayConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("backend.timeout"),
			UserAgent: userAgent,
		},
		BaseURL:    viper.GetString("backend.url"),
		MaxRetries: viper.GetInt("backend.max_retries"),
	}
}

func backendConfig() types.BackendConfig {
	return types.BackendConfig{
		Image: viper.GetString("container.image"),
		Name:  viper.GetString("container.name"),
		Port:  viper.GetInt("container.port"),
	}
}

// openCatalog opens the configured catalog store. The returned close
// function releases the underlying storage.
func openCatalog(w io.Writer) (*catalog.Store, func() error, error) {
	path := viper.GetString("catalog.path")

	switch types.CatalogBackend(viper.GetString("catalog.backend")) {
	case types.CatalogFile:
		store, err := catalog.Open(&catalog.FileStorage{Path: path}, w)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case types.CatalogSQLite, "":
		storage, err := catalog.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		store, err := catalog.Open(storage, w)
		if err != nil {
			storage.Close()
			return nil, nil, err
		}
		return store, storage.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported catalog backend %q: use sqlite or file", viper.GetString("catalog.backend"))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
