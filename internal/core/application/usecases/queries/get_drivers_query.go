package queries

import (
	"context"
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery lists every driver in registration order.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

type GetDriversQueryResponse struct {
	Count   int
	Drivers []DriverResponse
}

type GetDriversQueryHandler struct {
	reader StateReader
}

func NewGetDriversQueryHandler(reader StateReader) GetDriversQueryHandler {
	return GetDriversQueryHandler{reader: reader}
}

func (h GetDriversQueryHandler) Handle(ctx context.Context, query GetDriversQuery) (GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriversQueryResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return GetDriversQueryResponse{}, err
	}

	drivers := toDriverResponses(snapshot.Drivers)
	return GetDriversQueryResponse{Count: len(drivers), Drivers: drivers}, nil
}
