package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/amishk599/jobscrapper/internal/export"
	"github.com/amishk599/jobscrapper/internal/notifier"
	"github.com/amishk599/jobscrapper/internal/store"
	"github.com/spf13/cobra"
)

var noExport bool

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search once, log the results and export them to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&noExport, "no-export", false, "do not write {keyword}.csv")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	keyword := args[0]

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One lookup per process, nothing to cache.
	jobs, err := buildOrchestrator(cfg, store.NewNopCache(), logger).Search(ctx, keyword)
	if err != nil {
		return fmt.Errorf("search %q: %w", keyword, err)
	}

	if err := notifier.NewLogNotifier(logger).Notify(keyword, jobs); err != nil {
		logger.Warn("notify failed", "error", err)
	}

	if noExport {
		return nil
	}
	path, err := export.WriteCSV(cfg.Export.Dir, keyword, jobs)
	if err != nil {
		return err
	}
	logger.Info("exported", "path", path, "jobs", len(jobs))
	return nil
}
