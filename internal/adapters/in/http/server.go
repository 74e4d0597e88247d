package http

import (
	"log/slog"
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "Logistics Demo Backend"
	serviceVersion = "1.0.0"

	defaultDelayReason = "Unknown"
	duplicateReason    = "Duplicate event"

	statusSuccess = "success"
	statusIgnored = "ignored"
)

var _ servers.ServerInterface = (*Server)(nil)

// Commands groups the write-side handlers served over HTTP.
type Commands struct {
	CreateDriver      commands.CreateDriverCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	ProcessDelayEvent commands.ProcessDelayEventCommandHandler
	ResetSystem       commands.ResetSystemCommandHandler
}

// Queries groups the read-side handlers served over HTTP.
type Queries struct {
	GetDrivers     queries.GetDriversQueryHandler
	GetDriver      queries.GetDriverQueryHandler
	GetOrders      queries.GetOrdersQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	GetSystemState queries.GetSystemStateQueryHandler
	GetHealth      queries.GetHealthQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands Commands
	queries  Queries
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds Commands, qs Queries, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		commands: cmds,
		queries:  qs,
		logger:   logger.With("component", "http_server"),
	}
}

// GetIndex handles GET / - describes the service.
func (s *Server) GetIndex(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, servers.ServiceIndex{
		Service: serviceName,
		Version: serviceVersion,
		Endpoints: map[string]string{
			"health":        "GET /health",
			"state":         "GET /state",
			"delay_event":   "POST /event/delay",
			"drivers":       "GET /drivers",
			"create_driver": "POST /drivers",
			"get_driver":    "GET /drivers/{driver_id}",
			"orders":        "GET /orders",
			"create_order":  "POST /orders",
			"get_order":     "GET /orders/{order_id}",
			"reset":         "POST /reset",
			"docs":          "GET /docs/index.html",
			"openapi":       "GET /openapi.yml",
			"metrics":       "GET /metrics",
		},
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	health, err := s.queries.GetHealth.Handle(ctx.Request().Context(), queries.NewGetHealthQuery())
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, servers.Health{
		Status:          health.Status,
		Timestamp:       health.Timestamp,
		DriversCount:    health.DriversCount,
		OrdersCount:     health.OrdersCount,
		EventsProcessed: health.EventsProcessed,
	})
}

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(ctx echo.Context) error {
	resp, err := s.queries.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, servers.DriverList{
		Count:   resp.Count,
		Drivers: driverMap(resp.Drivers),
	})
}

// GetDriver handles GET /drivers/{driverId}.
func (s *Server) GetDriver(ctx echo.Context, driverID string) error {
	query, err := queries.NewGetDriverQuery(driverID)
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	d, err := s.queries.GetDriver.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, toDriver(d))
}

// CreateDriver handles POST /drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.CreateDriverJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return detail(ctx, http.StatusUnprocessableEntity, "Invalid request body")
	}

	cmd, err := commands.NewCreateDriverCommand(body.Id, body.Name, deref(body.Status), deref(body.CurrentLocation))
	if err != nil {
		return s.fail(ctx, err, createErrors)
	}

	created, err := s.commands.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, createErrors)
	}

	return ctx.JSON(http.StatusCreated, servers.Driver{
		Id:              created.ID(),
		Name:            created.Name(),
		Status:          created.Status().String(),
		CurrentLocation: created.Location(),
	})
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	resp, err := s.queries.GetOrders.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery())
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, servers.OrderList{
		Count:  resp.Count,
		Orders: orderMap(resp.Orders),
	})
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID string) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	o, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// CreateOrder handles POST /orders. Assigning a driver marks it BUSY.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return detail(ctx, http.StatusUnprocessableEntity, "Invalid request body")
	}

	reassignCount := 0
	if body.ReassignCount != nil {
		reassignCount = *body.ReassignCount
	}
	var createdAt time.Time
	if body.CreatedAt != nil {
		createdAt = *body.CreatedAt
	}

	cmd, err := commands.NewCreateOrderCommand(body.Id, body.AssignedDriverId, deref(body.Status), reassignCount, createdAt)
	if err != nil {
		return s.fail(ctx, err, createOrderErrors)
	}

	created, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, createOrderErrors)
	}

	return ctx.JSON(http.StatusCreated, servers.Order{
		Id:               created.ID(),
		Status:           created.Status().String(),
		AssignedDriverId: created.AssignedDriver(),
		ReassignCount:    created.ReassignCount(),
		CreatedAt:        created.CreatedAt(),
	})
}

// ProcessDelayEvent handles POST /event/delay. Processed and duplicate
// events are both accepted with 202.
func (s *Server) ProcessDelayEvent(ctx echo.Context) error {
	var body servers.ProcessDelayEventJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return detail(ctx, http.StatusUnprocessableEntity, "Invalid request body")
	}

	reason := defaultDelayReason
	if body.Reason != nil {
		reason = *body.Reason
	}

	cmd, err := commands.NewProcessDelayEventCommand(body.EventId, body.OrderId, body.DriverId, reason)
	if err != nil {
		return s.fail(ctx, err, delayEventErrors)
	}

	result, err := s.commands.ProcessDelayEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, delayEventErrors)
	}

	if result.Ignored {
		dup := duplicateReason
		return ctx.JSON(http.StatusAccepted, servers.DelayEventResult{
			Status:  statusIgnored,
			Reason:  &dup,
			EventId: result.EventID,
		})
	}

	score := result.RiskScore
	source := result.RiskSource.String()
	action := result.Action.String()
	orderStatus := result.OrderStatus.String()
	count := result.ReassignCount
	orderID := result.OrderID
	resp := servers.DelayEventResult{
		Status:           statusSuccess,
		EventId:          result.EventID,
		OrderId:          &orderID,
		RiskScore:        &score,
		RiskSource:       &source,
		ActionTaken:      &action,
		OrderStatus:      &orderStatus,
		ReassignCount:    &count,
		AssignedDriverId: result.AssignedDriverID,
	}
	if outcome := result.Outcome.String(); outcome != "" {
		resp.ReassignmentOutcome = &outcome
	}

	return ctx.JSON(http.StatusAccepted, resp)
}

// GetState handles GET /state.
func (s *Server) GetState(ctx echo.Context) error {
	state, err := s.queries.GetSystemState.Handle(ctx.Request().Context(), queries.NewGetSystemStateQuery())
	if err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	history := make([]servers.EventRecord, 0, len(state.EventHistory))
	for _, r := range state.EventHistory {
		rec := servers.EventRecord{
			EventId:     r.EventID,
			Timestamp:   r.Timestamp,
			OrderId:     r.OrderID,
			DriverId:    r.DriverID,
			Reason:      r.Reason,
			RiskScore:   r.RiskScore,
			RiskSource:  r.RiskSource,
			ActionTaken: r.ActionTaken,
			OrderStatus: r.OrderStatus,
		}
		if r.ReassignmentOutcome != "" {
			outcome := r.ReassignmentOutcome
			rec.ReassignmentOutcome = &outcome
		}
		history = append(history, rec)
	}

	return ctx.JSON(http.StatusOK, servers.SystemState{
		Drivers:         driverMap(state.Drivers),
		Orders:          orderMap(state.Orders),
		EventHistory:    history,
		ProcessedEvents: state.ProcessedEvents,
		Timestamp:       state.Timestamp,
	})
}

// ResetSystem handles POST /reset.
func (s *Server) ResetSystem(ctx echo.Context) error {
	if err := s.commands.ResetSystem.Handle(ctx.Request().Context(), commands.NewResetSystemCommand()); err != nil {
		return s.fail(ctx, err, lookupErrors)
	}

	return ctx.JSON(http.StatusOK, servers.ResetResult{
		Status:  statusSuccess,
		Message: "System reset complete. Ready for fresh demo.",
	})
}

func toDriver(d queries.DriverResponse) servers.Driver {
	return servers.Driver{
		Id:              d.ID,
		Name:            d.Name,
		Status:          d.Status,
		CurrentLocation: d.Location,
	}
}

func toOrder(o queries.OrderResponse) servers.Order {
	return servers.Order{
		Id:               o.ID,
		Status:           o.Status,
		AssignedDriverId: o.AssignedDriverID,
		ReassignCount:    o.ReassignCount,
		CreatedAt:        o.CreatedAt,
	}
}

func driverMap(drivers []queries.DriverResponse) map[string]servers.Driver {
	out := make(map[string]servers.Driver, len(drivers))
	for _, d := range drivers {
		out[d.ID] = toDriver(d)
	}
	return out
}

func orderMap(orders []queries.OrderResponse) map[string]servers.Order {
	out := make(map[string]servers.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = toOrder(o)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
