package queries

import (
	"context"
	"errors"
	"time"

	"logistics/internal/pkg/guard"
)

const HealthStatusHealthy = "healthy"

var ErrGetHealthQueryIsNotConstructed = errors.New(
	"GetHealthQuery must be created via NewGetHealthQuery constructor",
)

type GetHealthQuery struct {
	guard guard.ConstructorGuard
}

func NewGetHealthQuery() GetHealthQuery {
	return GetHealthQuery{guard: guard.NewConstructorGuard()}
}

func (q GetHealthQuery) Validate() error {
	return q.guard.Validate(ErrGetHealthQueryIsNotConstructed)
}

type GetHealthQueryResponse struct {
	Status          string
	Timestamp       time.Time
	DriversCount    int
	OrdersCount     int
	EventsProcessed int
}

// GetHealthQueryHandler reports liveness with store counters. Reaching the
// store at all is the health check.
type GetHealthQueryHandler struct {
	reader StateReader
}

func NewGetHealthQueryHandler(reader StateReader) GetHealthQueryHandler {
	return GetHealthQueryHandler{reader: reader}
}

func (h GetHealthQueryHandler) Handle(ctx context.Context, query GetHealthQuery) (GetHealthQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetHealthQueryResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return GetHealthQueryResponse{}, err
	}

	return GetHealthQueryResponse{
		Status:          HealthStatusHealthy,
		Timestamp:       snapshot.TakenAt,
		DriversCount:    len(snapshot.Drivers),
		OrdersCount:     len(snapshot.Orders),
		EventsProcessed: len(snapshot.ProcessedEvents),
	}, nil
}
