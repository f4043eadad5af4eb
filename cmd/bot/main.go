package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vouchtally/vouchtally/internal/bot"
	"github.com/vouchtally/vouchtally/internal/setup"
	"github.com/vouchtally/vouchtally/internal/setup/telemetry"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"
)

func main() {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(telemetry.ServiceBot, BotLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	// Create bot instance
	discordBot, err := bot.New(app.Config.Bot.Discord.Token, app.Stores, app.Logger)
	if err != nil {
		log.Printf("Failed to create bot: %v", err)
		return
	}

	// Start the bot and connect to Discord
	ctx := context.Background()
	if err := discordBot.Start(ctx); err != nil {
		log.Printf("Failed to start bot: %v", err)
		return
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session
	discordBot.Close(ctx)
}
