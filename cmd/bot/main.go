package main

import (
	"context"
	"log"

	"github.com/m3rciful/coursebot/core/cmd"
	"github.com/m3rciful/coursebot/internal/bot"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(ctx context.Context, cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return bot.New(ctx, cfg.(*bot.Config))
		},
	})
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
}
