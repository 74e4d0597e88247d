package queries

import (
	"context"
	"errors"
	"time"

	"logistics/internal/pkg/guard"
)

var ErrGetSystemStateQueryIsNotConstructed = errors.New(
	"GetSystemStateQuery must be created via NewGetSystemStateQuery constructor",
)

// GetSystemStateQuery returns the full store: drivers, orders, the processed
// event ledger and the event history, all taken at the same instant.
type GetSystemStateQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSystemStateQuery() GetSystemStateQuery {
	return GetSystemStateQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSystemStateQuery) Validate() error {
	return q.guard.Validate(ErrGetSystemStateQueryIsNotConstructed)
}

type GetSystemStateQueryResponse struct {
	Drivers         []DriverResponse
	Orders          []OrderResponse
	EventHistory    []EventRecordResponse
	ProcessedEvents []string
	Timestamp       time.Time
}

type GetSystemStateQueryHandler struct {
	reader StateReader
}

func NewGetSystemStateQueryHandler(reader StateReader) GetSystemStateQueryHandler {
	return GetSystemStateQueryHandler{reader: reader}
}

func (h GetSystemStateQueryHandler) Handle(
	ctx context.Context,
	query GetSystemStateQuery,
) (GetSystemStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSystemStateQueryResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return GetSystemStateQueryResponse{}, err
	}

	history := make([]EventRecordResponse, 0, len(snapshot.History))
	for _, r := range snapshot.History {
		history = append(history, toEventRecordResponse(r))
	}

	processed := make([]string, len(snapshot.ProcessedEvents))
	copy(processed, snapshot.ProcessedEvents)

	return GetSystemStateQueryResponse{
		Drivers:         toDriverResponses(snapshot.Drivers),
		Orders:          toOrderResponses(snapshot.Orders),
		EventHistory:    history,
		ProcessedEvents: processed,
		Timestamp:       snapshot.TakenAt,
	}, nil
}
