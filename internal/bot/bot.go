package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/vouchtally/vouchtally/internal/bot/commands"
	"github.com/vouchtally/vouchtally/internal/bot/constants"
	botEvents "github.com/vouchtally/vouchtally/internal/bot/events"
	"github.com/vouchtally/vouchtally/internal/database"
)

// Bot wires the Discord gateway to the command dispatcher. It owns the
// disgo client and the per-community store manager for the process
// lifetime.
type Bot struct {
	client     bot.Client
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// New initializes a Bot instance with its dispatcher and Discord client,
// configured with the gateway intents and event listeners it needs.
func New(token string, stores *database.Manager, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		dispatcher: NewDispatcher(stores, logger),
		logger:     logger,
	}

	guildEvents := botEvents.NewGuildEventHandler(logger)

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
			OnGuildJoin:                     guildEvents.OnGuildJoin,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord client: %w", err)
	}

	b.client = client

	return b, nil
}

// Start registers the slash commands globally and opens the gateway
// connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), commands.All())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")

	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
}

// handleApplicationCommandInteraction translates a slash command into a
// dispatcher request and sends back the single reply it produces. Each
// interaction is processed in its own goroutine.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		data := event.SlashCommandInteractionData()

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
			}

			b.logger.Debug("Application command interaction handled",
				zap.String("command", data.CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		req := Request{
			Kind:     KindForCommand(data.CommandName()),
			IssuerID: uint64(event.User().ID),
		}

		if guildID := event.GuildID(); guildID != nil {
			req.CommunityID = uint64(*guildID)
		}

		if target, ok := data.OptSnowflake(constants.UserOptionName); ok {
			req.TargetID = uint64(target)
		}

		if referral, ok := data.OptSnowflake(constants.ReferralOptionName); ok {
			req.ReferralID = uint64(referral)
		}

		reply := b.dispatcher.Dispatch(context.Background(), req)

		err := event.CreateMessage(discord.NewMessageCreateBuilder().
			SetContent(reply.Content).
			SetEphemeral(reply.Ephemeral).
			Build())
		if err != nil {
			b.logger.Error("Failed to send interaction response",
				zap.String("command", data.CommandName()),
				zap.Error(err))
		}
	}()
}
