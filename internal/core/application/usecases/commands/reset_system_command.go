package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/pkg/guard"
)

var ErrResetSystemCommandIsNotConstructed = errors.New(
	"ResetSystemCommand must be created via NewResetSystemCommand constructor",
)

// ResetSystemCommand wipes drivers, orders, the ledger and the history.
type ResetSystemCommand struct {
	guard guard.ConstructorGuard
}

func NewResetSystemCommand() ResetSystemCommand {
	return ResetSystemCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ResetSystemCommand) Validate() error {
	return c.guard.Validate(ErrResetSystemCommandIsNotConstructed)
}

// ResetSystemCommandHandler wipes the store. The wipe waits for any
// in-flight delay event to finish.
type ResetSystemCommandHandler struct {
	wiper  StateWiper
	logger *slog.Logger
}

func NewResetSystemCommandHandler(wiper StateWiper, logger *slog.Logger) ResetSystemCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ResetSystemCommandHandler{
		wiper:  wiper,
		logger: logger.With("component", "reset_system"),
	}
}

func (h ResetSystemCommandHandler) Handle(ctx context.Context, cmd ResetSystemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "reset initiated, wiping all state")
	if err := h.wiper.Wipe(ctx); err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "reset complete")
	return nil
}
