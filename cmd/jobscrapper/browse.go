package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/jobscrapper/internal/browse"
	"github.com/amishk599/jobscrapper/internal/store"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <keyword>",
	Short: "Search and browse the results interactively (TUI)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Any log output once the alt-screen starts corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := buildOrchestrator(cfg, store.NewNopCache(), silentLogger)

	jobs, err := browse.RunLoader(context.Background(), keyword, orch.Search)
	if err != nil {
		return fmt.Errorf("search %q: %w", keyword, err)
	}
	return browse.Run(keyword, jobs)
}
