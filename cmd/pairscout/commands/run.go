package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/songzhibin97/pairscout/internal/ai"
	"github.com/songzhibin97/pairscout/internal/ai/openai"
	"github.com/songzhibin97/pairscout/internal/bot"
	"github.com/songzhibin97/pairscout/internal/configs"
	"github.com/songzhibin97/pairscout/internal/data/storage"
	"github.com/songzhibin97/pairscout/internal/telegram"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--conf <path/to/config.json>]",
	Short: "Starts the Telegram bot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		config, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}

		log.Debug("loaded config", "wallet_driver", config.Wallets.Driver, "model", config.AIConfig.ModelType)

		wallets, err := storage.Open(ctx, config.Wallets)
		if err != nil {
			return err
		}
		defer wallets.Close()

		log.Debug("init wallet store")

		client := telegram.NewClient(config.Telegram.APIURL, config.Telegram.Token, config.Telegram.PollTimeout)

		enricher := ai.NewEnricher(
			openai.NewChatCompleter(config.AIConfig),
			configs.ParseDuration(config.AIConfig.Timeout, ai.DefaultTimeout),
			log,
		)

		svc := bot.NewService(newCollector(config), wallets, enricher, telegram.NewPusher(client), log)
		router := telegram.NewRouter(client, svc, log)
		queue := telegram.NewQueue(config.Telegram.QueueSize, time.Minute, router.Handle, log)

		log.Info("bot started")

		err = telegram.NewPoller(client, queue, config.Telegram.PollTimeout, log).Run(ctx)

		queue.Wait()
		svc.Close()
		log.Info("bot stopped")

		if errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	},
}
