package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
)

// CreateOrderCommandHandler adds an order and marks its assigned driver BUSY.
//
// Errors:
//   - errs.ErrObjectAlreadyExists when the order id is taken
//   - errs.ErrObjectNotFound (param "driver") when the assigned driver is unknown
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, now func() time.Time, logger *slog.Logger) CreateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		logger:     logger.With("component", "create_order"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	createdAt := cmd.CreatedAt()
	if createdAt.IsZero() {
		createdAt = h.now()
	}

	o, err := order.RestoreOrder(cmd.OrderID(), cmd.Status(), cmd.AssignedDriverID(), cmd.ReassignCount(), createdAt)
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

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if driverID := o.AssignedDriver(); driverID != nil {
		drivers := uow.DriverRepository()
		d, getErr := drivers.Get(ctx, *driverID)
		if getErr != nil {
			return nil, getErr
		}
		d.MarkBusy()
		if err = drivers.Update(ctx, d); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	assigned := ""
	if id := o.AssignedDriver(); id != nil {
		assigned = *id
	}
	h.logger.InfoContext(ctx, "order created", "order_id", o.ID(), "assigned_driver_id", assigned)
	return o, nil
}
