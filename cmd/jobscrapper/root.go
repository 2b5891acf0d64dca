package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/amishk599/jobscrapper/internal/adapter"
	"github.com/amishk599/jobscrapper/internal/config"
	"github.com/amishk599/jobscrapper/internal/crawler"
	"github.com/amishk599/jobscrapper/internal/model"
	"github.com/amishk599/jobscrapper/internal/retry"
	"github.com/amishk599/jobscrapper/internal/search"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscrapper",
	Short: "Search remote job boards by keyword",
	Long:  "jobscrapper scrapes WeWorkRemotely, web3.career and Berlin Startup Jobs for a keyword and serves or exports the merged listings.",
	// Bare `jobscrapper` starts the web front end.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCRAPPER_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSCRAPPER_CONFIG env var > "./config.yaml".
// A missing ./config.yaml is not an error; built-in defaults are used instead.
// A .env file in the working directory, if any, is loaded first so the config
// can reference its variables.
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("JOBSCRAPPER_CONFIG")
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// createSource returns the site adapter for name together with the opener
// that fetches its pages.
func createSource(name string, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.Source, model.Opener, bool) {
	switch name {
	case adapter.SourceWeWorkRemotely:
		return adapter.NewWeWorkRemotely(), adapter.NewBrowserOpener(
			adapter.WeWorkRemotelyReadySelector,
			cfg.Browser.Wait,
			cfg.Browser.NavigateTimeout,
			cfg.HTTP.UserAgent,
			cfg.Browser.ExecPath,
		), true
	case adapter.SourceWeb3Career:
		return adapter.NewWeb3Career(), adapter.NewHTTPFetcher(httpClient, cfg.HTTP.UserAgent), true
	case adapter.SourceBerlinStartupJobs:
		return adapter.NewBerlinStartupJobs(), adapter.NewHTTPFetcher(httpClient, cfg.HTTP.UserAgent), true
	default:
		logger.Warn("unsupported source, skipping", "source", name)
		return nil, nil, false
	}
}

// buildOrchestrator wires one crawler per configured source, in config order.
func buildOrchestrator(cfg *config.Config, cache model.SearchCache, logger *slog.Logger) *search.Orchestrator {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	var crawlers []model.Searcher
	for _, name := range cfg.Sources {
		src, opener, ok := createSource(name, cfg, httpClient, logger)
		if !ok {
			continue
		}
		if cfg.Retry.MaxRetries > 0 {
			opener = retry.NewRetryOpener(opener, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
		}
		crawlers = append(crawlers, crawler.NewCrawler(src, opener, cfg.Crawl.MaxPages, logger))
		logger.Debug("registered source", "source", name)
	}

	return search.NewOrchestrator(crawlers, cache, logger)
}
