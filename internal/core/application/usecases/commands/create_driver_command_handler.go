package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/driver"
)

// CreateDriverCommandHandler adds a driver to the store.
// A duplicate id fails with errs.ErrObjectAlreadyExists.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	logger     *slog.Logger
}

func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory, logger *slog.Logger) CreateDriverCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "create_driver"),
	}
}

func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := driver.RestoreDriver(cmd.DriverID(), cmd.Name(), cmd.Status(), cmd.Location())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "driver created", "driver_id", d.ID(), "name", d.Name(), "status", d.Status().String())
	return d, nil
}
