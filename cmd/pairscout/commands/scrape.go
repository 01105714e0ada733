package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var scrapeOut *string

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "tests.json", "The file to write scraped listings to.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/output.json>]",
	Short: "Scrapes the new pairs page once and writes the listings as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		t1 := time.Now()
		listings := newCollector(config).Extract(cmd.Context())
		log.Info("scraping time", "seconds", time.Since(t1).Seconds(), "count", len(listings))

		out, err := json.MarshalIndent(listings, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to encode listings: %w", err)
		}
		if err := os.WriteFile(*scrapeOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", *scrapeOut, err)
		}
		return nil
	},
}
