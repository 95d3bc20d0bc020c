// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/container"
)

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Run the analysis backend in a local container",
	Long: `Backend controls the analysis service container. Up starts a detached
container publishing the backend port, down stops it, and status reports
whether it is running. Docker is preferred; podman is the fallback.`,
}

var backendUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the backend container",
	RunE:  runBackendUp,
}

func runBackendUp(cmd *cobra.Command, args []string) error {
	cfg := backendConfig()

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	if err := rt.ImageExists(cfg.Image); err != nil {
		return err
	}
	if err := rt.Start(cfg.Name, cfg.Image, cfg.Port); err != nil {
		return err
	}
	fmt.Printf("Started %s via %s on port %d.\n", cfg.Name, rt.Name(), cfg.Port)
	return nil
}

var backendDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the backend container",
	RunE:  runBackendDown,
}

func runBackendDown(cmd *cobra.Command, args []string) error {
	cfg := backendConfig()

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	if err := rt.Stop(cfg.Name); err != nil {
		return err
	}
	fmt.Printf("Stopped %s.\n", cfg.Name)
	return nil
}

var backendStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the backend container is running",
	RunE:  runBackendStatus,
}

func runBackendStatus(cmd *cobra.Command, args []string) error {
	cfg := backendConfig()

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	running, err := rt.Running(cfg.Name)
	if err != nil {
		return err
	}
	if running {
		fmt.Printf("%s is running (%s).\n", cfg.Name, rt.Name())
	} else {
		fmt.Printf("%s is not running.\n", cfg.Name)
	}
	return nil
}

func init() {
	backendCmd.AddCommand(backendUpCmd)
	backendCmd.AddCommand(backendDownCmd)
	backendCmd.AddCommand(backendStatusCmd)

	rootCmd.AddCommand(backendCmd)
}
