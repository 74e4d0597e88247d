package queries

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetDriverQueryIsNotConstructed = errors.New(
	"GetDriverQuery must be created via NewGetDriverQuery constructor",
)

// GetDriverQuery looks up one driver by id.
//
// Example:
//
//	query, err := NewGetDriverQuery("DRV-001")
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetDriverQuery struct {
	driverID string

	guard guard.ConstructorGuard
}

func NewGetDriverQuery(driverID string) (GetDriverQuery, error) {
	if strings.TrimSpace(driverID) == "" {
		return GetDriverQuery{}, errs.NewValueIsRequiredError("driver_id")
	}
	return GetDriverQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverQueryIsNotConstructed)
}

func (q GetDriverQuery) DriverID() string {
	return q.driverID
}

type GetDriverQueryHandler struct {
	reader StateReader
}

func NewGetDriverQueryHandler(reader StateReader) GetDriverQueryHandler {
	return GetDriverQueryHandler{reader: reader}
}

// Handle fails with errs.ErrObjectNotFound when the driver is unknown.
func (h GetDriverQueryHandler) Handle(ctx context.Context, query GetDriverQuery) (DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return DriverResponse{}, err
	}

	for _, d := range snapshot.Drivers {
		if d.ID() == query.DriverID() {
			return toDriverResponse(d), nil
		}
	}
	return DriverResponse{}, errs.NewObjectNotFoundError("driver", query.DriverID())
}
