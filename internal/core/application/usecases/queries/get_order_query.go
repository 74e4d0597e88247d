package queries

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if strings.TrimSpace(orderID) == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order_id")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

type GetOrderQueryHandler struct {
	reader StateReader
}

func NewGetOrderQueryHandler(reader StateReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle fails with errs.ErrObjectNotFound when the order is unknown.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return OrderResponse{}, err
	}

	for _, o := range snapshot.Orders {
		if o.ID() == query.OrderID() {
			return toOrderResponse(o), nil
		}
	}
	return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
}
