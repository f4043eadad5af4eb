package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vouchtally/vouchtally/internal/bot/constants"
	"github.com/vouchtally/vouchtally/internal/database"
	"go.uber.org/zap"
)

var (
	// ErrOutOfScope indicates a command issued outside a community
	// context. The ledger is strictly community-scoped, so direct
	// messages are rejected before anything touches storage.
	ErrOutOfScope = errors.New("command used outside a community context")

	// ErrMissingTarget indicates a command that requires a resolved
	// target user arrived without one.
	ErrMissingTarget = errors.New("required target user missing")
)

// Kind identifies one of the four supported operations.
type Kind int

const (
	KindUnknown Kind = iota
	KindVouch
	KindList
	KindReset
	KindDecrement
)

// commandKinds maps every registered command name, canonical or legacy,
// to its operation. Naming is presentation only; the core sees kinds.
var commandKinds = map[string]Kind{
	constants.VouchCommandName:           KindVouch,
	constants.LegacyVouchCommandName:     KindVouch,
	constants.ListCommandName:            KindList,
	constants.ResetCommandName:           KindReset,
	constants.LegacyResetCommandName:     KindReset,
	constants.DecrementCommandName:       KindDecrement,
	constants.LegacyDecrementCommandName: KindDecrement,
}

// KindForCommand resolves a command name to its operation kind.
func KindForCommand(name string) Kind {
	return commandKinds[name]
}

// Request is one inbound command invocation, already resolved by the
// chat platform. A zero CommunityID signals a non-community context.
type Request struct {
	Kind        Kind
	CommunityID uint64
	IssuerID    uint64
	TargetID    uint64
	ReferralID  uint64
}

// Validate checks that the request carries a community scope and the
// target users its kind requires. It returns ErrOutOfScope or
// ErrMissingTarget; a nil result means the request is routable.
func (r Request) Validate() error {
	if r.CommunityID == 0 {
		return ErrOutOfScope
	}

	switch r.Kind {
	case KindVouch:
		if r.TargetID == 0 || r.ReferralID == 0 {
			return ErrMissingTarget
		}
	case KindReset, KindDecrement:
		if r.TargetID == 0 {
			return ErrMissingTarget
		}
	case KindList, KindUnknown:
	}

	return nil
}

// Reply is the single response produced for a request. Ephemeral replies
// are shown only to the issuing user.
type Reply struct {
	Content   string
	Ephemeral bool
}

// Dispatcher validates command requests, routes them to the ledger
// services, and shapes replies. It performs no persistence logic itself.
type Dispatcher struct {
	stores *database.Manager
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher backed by the given store manager.
func NewDispatcher(stores *database.Manager, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		stores: stores,
		logger: logger.Named("dispatcher"),
	}
}

// Dispatch handles one request and always produces exactly one reply,
// success or failure. Store failures are logged and surfaced as generic
// failure replies; they are never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Reply {
	if err := req.Validate(); err != nil {
		switch {
		case errors.Is(err, ErrOutOfScope):
			return Reply{Content: constants.GuildOnlyMessage, Ephemeral: true}
		case errors.Is(err, ErrMissingTarget):
			return Reply{Content: constants.MissingTargetMessage, Ephemeral: true}
		}
	}

	switch req.Kind {
	case KindVouch:
		return d.handleVouch(ctx, req)
	case KindList:
		return d.handleList(ctx, req)
	case KindReset:
		return d.handleReset(ctx, req)
	case KindDecrement:
		return d.handleDecrement(ctx, req)
	case KindUnknown:
	}

	return Reply{Content: constants.UnknownCommandMessage, Ephemeral: true}
}

func (d *Dispatcher) handleVouch(ctx context.Context, req Request) Reply {
	client, err := d.stores.Get(ctx, req.CommunityID)
	if err != nil {
		d.logger.Error("Failed to open community ledger",
			zap.Uint64("communityID", req.CommunityID),
			zap.Error(err))

		return Reply{Content: constants.VouchSaveErrorMessage, Ephemeral: true}
	}

	err = client.Service().Vouch().Record(ctx, req.TargetID, req.ReferralID, req.IssuerID)
	if err != nil {
		d.logger.Error("Failed to record vouch",
			zap.Uint64("communityID", req.CommunityID),
			zap.Uint64("target", req.TargetID),
			zap.Error(err))

		return Reply{Content: constants.VouchSaveErrorMessage, Ephemeral: true}
	}

	return Reply{
		Content: fmt.Sprintf("<@%d> vouched for <@%d> (Referral: <@%d>)!",
			req.IssuerID, req.TargetID, req.ReferralID),
	}
}

func (d *Dispatcher) handleList(ctx context.Context, req Request) Reply {
	client, err := d.stores.Get(ctx, req.CommunityID)
	if err != nil {
		d.logger.Error("Failed to open community ledger",
			zap.Uint64("communityID", req.CommunityID),
			zap.Error(err))

		return Reply{Content: constants.ListRetrieveErrorMessage, Ephemeral: true}
	}

	ranked, err := client.Service().Leaderboard().Ranked(ctx)
	if err != nil {
		d.logger.Error("Failed to retrieve leaderboard",
			zap.Uint64("communityID", req.CommunityID),
			zap.Error(err))

		return Reply{Content: constants.ListRetrieveErrorMessage, Ephemeral: true}
	}

	if len(ranked) == 0 {
		return Reply{Content: constants.EmptyListMessage}
	}

	var sb strings.Builder

	sb.WriteString(constants.ListHeaderMessage)

	for _, member := range ranked {
		sb.WriteString(fmt.Sprintf("\n%d. <@%d>: %d vouches", member.Rank, member.UserID, member.VouchCount))
	}

	return Reply{Content: sb.String()}
}

func (d *Dispatcher) handleReset(ctx context.Context, req Request) Reply {
	client, err := d.stores.Get(ctx, req.CommunityID)
	if err != nil {
		d.logger.Error("Failed to open community ledger",
			zap.Uint64("communityID", req.CommunityID),
			zap.Error(err))

		return Reply{Content: constants.ResetErrorMessage, Ephemeral: true}
	}

	if err := client.Service().Vouch().Reset(ctx, req.TargetID); err != nil {
		d.logger.Error("Failed to reset vouches",
			zap.Uint64("communityID", req.CommunityID),
			zap.Uint64("target", req.TargetID),
			zap.Error(err))

		return Reply{Content: constants.ResetErrorMessage, Ephemeral: true}
	}

	return Reply{Content: fmt.Sprintf("Vouches for <@%d> have been reset.", req.TargetID)}
}

func (d *Dispatcher) handleDecrement(ctx context.Context, req Request) Reply {
	client, err := d.stores.Get(ctx, req.CommunityID)
	if err != nil {
		d.logger.Error("Failed to open community ledger",
			zap.Uint64("communityID", req.CommunityID),
			zap.Error(err))

		return Reply{Content: constants.DecrementErrorMessage, Ephemeral: true}
	}

	changed, err := client.Service().Vouch().Decrement(ctx, req.TargetID)
	if err != nil {
		d.logger.Error("Failed to decrement vouch count",
			zap.Uint64("communityID", req.CommunityID),
			zap.Uint64("target", req.TargetID),
			zap.Error(err))

		return Reply{Content: constants.DecrementErrorMessage, Ephemeral: true}
	}

	if !changed {
		return Reply{Content: fmt.Sprintf("<@%d> already has 0 vouches.", req.TargetID)}
	}

	return Reply{Content: fmt.Sprintf("Decreased 1 vouch from <@%d>.", req.TargetID)}
}
