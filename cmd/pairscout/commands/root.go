package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/songzhibin97/pairscout/internal/configs"
	"github.com/songzhibin97/pairscout/internal/data/collector"
	"github.com/songzhibin97/pairscout/internal/data/collector/dexscreener"
)

var (
	flagconf string

	log = newLogger("debug")
)

var rootCmd = &cobra.Command{
	Use:   "pairscout",
	Short: "pairscout tracks new token pairs on dexscreener and serves them through a Telegram bot.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagconf, "conf", "config.json", "config path, eg: --conf config.json")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     l,
	}))
}

// loadConfig reads the config and rebuilds the logger at the configured level
func loadConfig() (*configs.Config, error) {
	config, err := configs.Load(flagconf)
	if err != nil {
		return nil, err
	}
	log = newLogger(config.LogLevel)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}
	return config, nil
}

func newCollector(config *configs.Config) *collector.MultiSourceCollector {
	return collector.NewMultiSourceCollector([]collector.Source{
		dexscreener.NewDexScreenerSource(config.Scraper, log),
	}, log)
}
