package constants

// Canonical slash command names.
const (
	VouchCommandName     = "vouch"
	ListCommandName      = "vouch-list"
	ResetCommandName     = "vouch-reset"
	DecrementCommandName = "vouch-remove"
)

// Legacy command vocabulary kept for communities that learned the
// original bot's names. Aliased to the same operations.
const (
	LegacyVouchCommandName     = "vouche"
	LegacyResetCommandName     = "reset-vouche"
	LegacyDecrementCommandName = "decrease-vouche"
)

// Slash command option names.
const (
	UserOptionName     = "user"
	ReferralOptionName = "referral"
)

// Reply texts. Wording follows the original bot so migrating communities
// see familiar responses.
const (
	GuildOnlyMessage      = "This bot can only be used in servers."
	MissingTargetMessage  = "A target user is required for this command."
	UnknownCommandMessage = "This command is not available."

	EmptyListMessage  = "No users have received any vouches yet."
	ListHeaderMessage = "🏆 **Vouch List** 🏆"

	VouchSaveErrorMessage    = "An error occurred while saving the vouch."
	ListRetrieveErrorMessage = "An error occurred while retrieving the vouch list."
	ResetErrorMessage        = "An error occurred while resetting vouches."
	DecrementErrorMessage    = "An error occurred while decreasing the vouch count."
)
