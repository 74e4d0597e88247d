package queries

import (
	"context"
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists every order in creation order.
type GetOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

type GetOrdersQueryResponse struct {
	Count  int
	Orders []OrderResponse
}

type GetOrdersQueryHandler struct {
	reader StateReader
}

func NewGetOrdersQueryHandler(reader StateReader) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{reader: reader}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	orders := toOrderResponses(snapshot.Orders)
	return GetOrdersQueryResponse{Count: len(orders), Orders: orders}, nil
}
