package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"oddsharvest/internal/pkg/config"
	"oddsharvest/internal/pkg/export"
	"oddsharvest/internal/pkg/logging"
	"oddsharvest/internal/pkg/notify"
	"oddsharvest/internal/scraper"
	"oddsharvest/internal/scraper/browser"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	leagueURL  string
	output     string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Scraper failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", defaultConfigPath, "path to config file")
	flag.StringVar(&f.leagueURL, "league", "", "league results URL (overrides config)")
	flag.StringVar(&f.output, "output", "", "export output path (overrides config)")
	flag.Parse()
	return f
}

func run() error {
	f := parseFlags()

	slog.Info("Loading config", "path", f.configPath)
	appConfig, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.Setup(&appConfig.Logging, "scraper"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	if f.leagueURL != "" {
		appConfig.Scraper.LeagueURL = f.leagueURL
	}
	if f.output != "" {
		appConfig.Export.OutputPath = f.output
	}
	if appConfig.Scraper.LeagueURL == "" {
		return fmt.Errorf("no league URL: set scraper.league_url or pass -league")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(ctx, appConfig.Scraper.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	var notifier *notify.TelegramNotifier
	if appConfig.Telegram.Enabled {
		notifier, err = notify.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)
		if err != nil {
			slog.Warn("Telegram notifications disabled", "error", err)
		}
	}

	debug := scraper.NewDebugSink(appConfig.Scraper.DebugDir)
	nav := scraper.NewNavigator(session, &appConfig.Scraper)
	crawler := scraper.NewCrawler(nav, &appConfig.Scraper, debug)
	assembler := scraper.NewAssembler(nav, session, &appConfig.Scraper, debug)
	exporter := export.NewJSONExporter(appConfig.Export.OutputPath)

	seasons := crawler.DiscoverSeasons(ctx, appConfig.Scraper.LeagueURL)
	if len(seasons) == 0 {
		slog.Warn("No seasons found", "url", appConfig.Scraper.LeagueURL)
		return nil
	}

	for _, season := range seasons {
		if ctx.Err() != nil {
			slog.Warn("Interrupted, writing partial results")
			break
		}

		if err := crawler.ResolvePagination(ctx, season); err != nil {
			// Pagination format breaks are fatal for the season only; the
			// run carries on with the remaining seasons.
			slog.Error("Skipping season", "season", season.Name, "error", err)
			continue
		}

		assembler.Populate(ctx, season)

		if err := exporter.Collect(season); err != nil {
			slog.Error("Failed to collect season", "season", season.Name, "error", err)
			continue
		}
		notifier.SeasonDone(season)
	}

	if err := exporter.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	slog.Info("Scrape complete", "seasons", len(seasons), "output", appConfig.Export.OutputPath)
	return nil
}
