package cmd_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"logistics/cmd"
	"logistics/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) *cmd.CompositionRoot {
	t.Helper()
	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)
	root, err := cmd.NewCompositionRoot(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return root
}

func get[T any](t *testing.T, h http.Handler, path string) T {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCompositionRoot_SeedDemoData(t *testing.T) {
	root := newRoot(t)
	h, err := root.NewHTTPHandler()
	require.NoError(t, err)

	require.NoError(t, root.SeedDemoData(t.Context()))
	require.NoError(t, root.SeedDemoData(t.Context()), "seeding twice keeps existing entities")

	drivers := get[servers.DriverList](t, h, "/drivers")
	assert.Equal(t, 3, drivers.Count)
	assert.Equal(t, "BUSY", drivers.Drivers["DRV-001"].Status)
	assert.Equal(t, "BUSY", drivers.Drivers["DRV-002"].Status)
	assert.Equal(t, "AVAILABLE", drivers.Drivers["DRV-003"].Status)
	assert.Equal(t, "Carol Martinez", drivers.Drivers["DRV-003"].Name)

	orders := get[servers.OrderList](t, h, "/orders")
	assert.Equal(t, 2, orders.Count)
	assert.Equal(t, "DRV-002", *orders.Orders["ORD-002"].AssignedDriverId)
	assert.Equal(t, "ACTIVE", orders.Orders["ORD-002"].Status)
}

func TestCompositionRoot_JobManagerStarts(t *testing.T) {
	root := newRoot(t)
	manager := root.NewJobManager()

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
