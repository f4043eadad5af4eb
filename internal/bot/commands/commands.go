// Package commands holds the slash command schemas registered with
// Discord. Shared between startup registration and guild join handling.
package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/vouchtally/vouchtally/internal/bot/constants"
)

// All returns every slash command the bot registers, canonical names and
// legacy aliases alike.
func All() []discord.ApplicationCommandCreate {
	vouchOptions := []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        constants.UserOptionName,
			Description: "The user you are vouching for",
			Required:    true,
		},
		discord.ApplicationCommandOptionUser{
			Name:        constants.ReferralOptionName,
			Description: "The referral user",
			Required:    true,
		},
	}

	resetOptions := []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        constants.UserOptionName,
			Description: "The user whose vouches to reset",
			Required:    true,
		},
	}

	decrementOptions := []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        constants.UserOptionName,
			Description: "The user whose vouch count to decrease",
			Required:    true,
		},
	}

	return []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        constants.VouchCommandName,
			Description: "Add a vouch for a user",
			Options:     vouchOptions,
		},
		discord.SlashCommandCreate{
			Name:        constants.LegacyVouchCommandName,
			Description: "Add a vouch for a user",
			Options:     vouchOptions,
		},
		discord.SlashCommandCreate{
			Name:        constants.ListCommandName,
			Description: "View the list of users with their vouch counts",
		},
		discord.SlashCommandCreate{
			Name:        constants.ResetCommandName,
			Description: "Reset vouches for a specific user",
			Options:     resetOptions,
		},
		discord.SlashCommandCreate{
			Name:        constants.LegacyResetCommandName,
			Description: "Reset vouches for a specific user",
			Options:     resetOptions,
		},
		discord.SlashCommandCreate{
			Name:        constants.DecrementCommandName,
			Description: "Decrease a vouch for a specific user",
			Options:     decrementOptions,
		},
		discord.SlashCommandCreate{
			Name:        constants.LegacyDecrementCommandName,
			Description: "Decrease a vouch for a specific user",
			Options:     decrementOptions,
		},
	}
}
