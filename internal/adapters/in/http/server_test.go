package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/application/risk"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fixedPredictor struct{ score float64 }

func (p fixedPredictor) Predict(context.Context, ports.RiskRequest) risk.Assessment {
	return risk.Assessment{Score: p.score, Source: event.RiskSourceRemote}
}

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

type funcDriverUoWFactory func() commands.DriverUoW

func (f funcDriverUoWFactory) Create() commands.DriverUoW { return f() }

type ServerTestSuite struct {
	suite.Suite
	store *memory.Store
	echo  *echo.Echo
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(s.store)
	uows := funcUoWFactory(func() commands.UoW { return factory.Create() })
	driverUoWs := funcDriverUoWFactory(func() commands.DriverUoW { return factory.Create() })

	engine, err := services.NewReassignmentEngine(services.DefaultMaxReassignments)
	s.Require().NoError(err)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	server := httpadapter.NewServer(
		httpadapter.Commands{
			CreateDriver: commands.NewCreateDriverCommandHandler(driverUoWs, logger),
			CreateOrder:  commands.NewCreateOrderCommandHandler(uows, nil, logger),
			ProcessDelayEvent: commands.NewProcessDelayEventCommandHandler(uows, fixedPredictor{score: 0.9}, engine,
				commands.WithLogger(logger), commands.WithMetrics(m)),
			ResetSystem: commands.NewResetSystemCommandHandler(s.store, logger),
		},
		httpadapter.Queries{
			GetDrivers:     queries.NewGetDriversQueryHandler(s.store),
			GetDriver:      queries.NewGetDriverQueryHandler(s.store),
			GetOrders:      queries.NewGetOrdersQueryHandler(s.store),
			GetOrder:       queries.NewGetOrderQueryHandler(s.store),
			GetSystemState: queries.NewGetSystemStateQueryHandler(s.store),
			GetHealth:      queries.NewGetHealthQueryHandler(s.store),
		},
		logger,
	)

	s.echo, err = httpadapter.NewRouter(server, registry, logger)
	s.Require().NoError(err)

	s.expect(http.MethodPost, "/drivers", `{"id":"DRV-001","name":"Alice Johnson"}`, http.StatusCreated)
	s.expect(http.MethodPost, "/drivers", `{"id":"DRV-002","name":"Bob Chen"}`, http.StatusCreated)
	s.expect(http.MethodPost, "/orders", `{"id":"ORD-001","assigned_driver_id":"DRV-001"}`, http.StatusCreated)
}

func (s *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) expect(method, path, body string, status int) *httptest.ResponseRecorder {
	rec := s.do(method, path, body)
	s.Require().Equal(status, rec.Code, rec.Body.String())
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *ServerTestSuite) TestIndex() {
	index := decode[servers.ServiceIndex](s.T(), s.expect(http.MethodGet, "/", "", http.StatusOK))

	s.Equal("Logistics Demo Backend", index.Service)
	s.Equal("1.0.0", index.Version)
	s.Equal("POST /event/delay", index.Endpoints["delay_event"])
}

func (s *ServerTestSuite) TestHealth() {
	health := decode[servers.Health](s.T(), s.expect(http.MethodGet, "/health", "", http.StatusOK))

	s.Equal("healthy", health.Status)
	s.Equal(2, health.DriversCount)
	s.Equal(1, health.OrdersCount)
	s.Equal(0, health.EventsProcessed)
	s.WithinDuration(time.Now(), health.Timestamp, time.Minute)
}

func (s *ServerTestSuite) TestDrivers() {
	list := decode[servers.DriverList](s.T(), s.expect(http.MethodGet, "/drivers", "", http.StatusOK))
	s.Equal(2, list.Count)
	s.Equal("BUSY", list.Drivers["DRV-001"].Status)
	s.Equal("AVAILABLE", list.Drivers["DRV-002"].Status)
	s.Equal("HUB-01", list.Drivers["DRV-002"].CurrentLocation)

	d := decode[servers.Driver](s.T(), s.expect(http.MethodGet, "/drivers/DRV-002", "", http.StatusOK))
	s.Equal("Bob Chen", d.Name)

	missing := decode[servers.Error](s.T(), s.expect(http.MethodGet, "/drivers/DRV-404", "", http.StatusNotFound))
	s.Equal("Driver 'DRV-404' not found", missing.Detail)
}

func (s *ServerTestSuite) TestCreateDriver() {
	created := decode[servers.Driver](s.T(), s.expect(http.MethodPost, "/drivers",
		`{"id":"DRV-003","name":"Carol Martinez","current_location":"DEPOT-2"}`, http.StatusCreated))
	s.Equal("AVAILABLE", created.Status)
	s.Equal("DEPOT-2", created.CurrentLocation)

	conflict := decode[servers.Error](s.T(), s.expect(http.MethodPost, "/drivers",
		`{"id":"DRV-001","name":"Someone Else"}`, http.StatusConflict))
	s.Equal("Driver 'DRV-001' already exists", conflict.Detail)

	s.expect(http.MethodPost, "/drivers", `{"id":"DRV-009"}`, http.StatusUnprocessableEntity)
	s.expect(http.MethodPost, "/drivers", `{"id":"DRV-009","name":"X","status":"ON_BREAK"}`, http.StatusUnprocessableEntity)
}

func (s *ServerTestSuite) TestOrders() {
	list := decode[servers.OrderList](s.T(), s.expect(http.MethodGet, "/orders", "", http.StatusOK))
	s.Equal(1, list.Count)
	s.Equal("ACTIVE", list.Orders["ORD-001"].Status)
	s.Equal("DRV-001", *list.Orders["ORD-001"].AssignedDriverId)

	missing := decode[servers.Error](s.T(), s.expect(http.MethodGet, "/orders/ORD-404", "", http.StatusNotFound))
	s.Equal("Order 'ORD-404' not found", missing.Detail)

	conflict := decode[servers.Error](s.T(), s.expect(http.MethodPost, "/orders",
		`{"id":"ORD-001"}`, http.StatusConflict))
	s.Equal("Order 'ORD-001' already exists", conflict.Detail)

	unknown := decode[servers.Error](s.T(), s.expect(http.MethodPost, "/orders",
		`{"id":"ORD-002","assigned_driver_id":"DRV-404"}`, http.StatusBadRequest))
	s.Equal("Assigned driver 'DRV-404' not found", unknown.Detail)
	s.expect(http.MethodGet, "/orders/ORD-002", "", http.StatusNotFound)

	created := decode[servers.Order](s.T(), s.expect(http.MethodPost, "/orders",
		`{"id":"ORD-002","assigned_driver_id":null}`, http.StatusCreated))
	s.Nil(created.AssignedDriverId)
	s.Equal(0, created.ReassignCount)
}

func (s *ServerTestSuite) TestDelayEvent() {
	body := `{"event_id":"evt-1","order_id":"ORD-001","driver_id":"DRV-001","reason":"Engine failure"}`

	result := decode[servers.DelayEventResult](s.T(), s.expect(http.MethodPost, "/event/delay", body, http.StatusAccepted))
	s.Equal("success", result.Status)
	s.Equal("evt-1", result.EventId)
	s.Equal("REASSIGNMENT_INITIATED", *result.ActionTaken)
	s.Equal("REASSIGNED", *result.ReassignmentOutcome)
	s.Equal("DELAYED", *result.OrderStatus)
	s.Equal(1, *result.ReassignCount)
	s.Equal("DRV-002", *result.AssignedDriverId)
	s.InDelta(0.9, *result.RiskScore, 1e-9)
	s.Equal("remote", *result.RiskSource)

	replay := decode[servers.DelayEventResult](s.T(), s.expect(http.MethodPost, "/event/delay", body, http.StatusAccepted))
	s.Equal("ignored", replay.Status)
	s.Equal("Duplicate event", *replay.Reason)
	s.Equal("evt-1", replay.EventId)
	s.Nil(replay.ActionTaken)
}

func (s *ServerTestSuite) TestDelayEventRejections() {
	missingOrder := decode[servers.Error](s.T(), s.expect(http.MethodPost, "/event/delay",
		`{"event_id":"evt-1","order_id":"ORD-404","driver_id":"DRV-001"}`, http.StatusBadRequest))
	s.Equal("Order 'ORD-404' not found", missingOrder.Detail)

	missingDriver := decode[servers.Error](s.T(), s.expect(http.MethodPost, "/event/delay",
		`{"event_id":"evt-1","order_id":"ORD-001","driver_id":"DRV-404"}`, http.StatusBadRequest))
	s.Equal("Driver 'DRV-404' not found", missingDriver.Detail)

	s.expect(http.MethodPost, "/event/delay", `{"order_id":"ORD-001","driver_id":"DRV-001"}`,
		http.StatusUnprocessableEntity)
	s.expect(http.MethodPost, "/event/delay", `{"event_id":"  ","order_id":"ORD-001","driver_id":"DRV-001"}`,
		http.StatusUnprocessableEntity)
	s.expect(http.MethodPost, "/event/delay", `not json`, http.StatusUnprocessableEntity)

	health := decode[servers.Health](s.T(), s.expect(http.MethodGet, "/health", "", http.StatusOK))
	s.Equal(0, health.EventsProcessed)
}

func (s *ServerTestSuite) TestStateAndReset() {
	s.expect(http.MethodPost, "/event/delay",
		`{"event_id":"evt-1","order_id":"ORD-001","driver_id":"DRV-001"}`, http.StatusAccepted)

	state := decode[servers.SystemState](s.T(), s.expect(http.MethodGet, "/state", "", http.StatusOK))
	s.Len(state.Drivers, 2)
	s.Len(state.Orders, 1)
	s.Equal([]string{"evt-1"}, state.ProcessedEvents)
	s.Require().Len(state.EventHistory, 1)
	s.Equal("Unknown", state.EventHistory[0].Reason)
	s.Equal("DRV-001", state.EventHistory[0].DriverId)
	s.Equal("REASSIGNED", *state.EventHistory[0].ReassignmentOutcome)

	reset := decode[servers.ResetResult](s.T(), s.expect(http.MethodPost, "/reset", "", http.StatusOK))
	s.Equal("success", reset.Status)

	state = decode[servers.SystemState](s.T(), s.expect(http.MethodGet, "/state", "", http.StatusOK))
	s.Empty(state.Drivers)
	s.Empty(state.Orders)
	s.Empty(state.ProcessedEvents)
	s.Empty(state.EventHistory)
}

func (s *ServerTestSuite) TestOperationalEndpoints() {
	metricsBody := s.expect(http.MethodGet, "/metrics", "", http.StatusOK).Body.String()
	s.Contains(metricsBody, "logistics_risk_service_up")

	spec := s.expect(http.MethodGet, "/openapi.yml", "", http.StatusOK).Body.String()
	s.Contains(spec, "openapi: 3.0.3")

	s.expect(http.MethodGet, "/nowhere", "", http.StatusNotFound)
}

func (s *ServerTestSuite) TestRequestIDHeader() {
	rec := s.expect(http.MethodGet, "/health", "", http.StatusOK)

	s.NotEmpty(rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestNewServer_SatisfiesGeneratedInterface(t *testing.T) {
	var si servers.ServerInterface = httpadapter.NewServer(httpadapter.Commands{}, httpadapter.Queries{}, nil)

	assert.NotNil(t, si)
}
