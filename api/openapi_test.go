package api_test

import (
	"testing"

	"logistics/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := api.GetSwagger()

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	for _, path := range []string{"/", "/health", "/drivers", "/drivers/{driverId}", "/orders",
		"/orders/{orderId}", "/event/delay", "/state", "/reset"} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}
	assert.Equal(t, "ProcessDelayEvent", doc.Paths.Value("/event/delay").Post.OperationID)
}

func TestSpecReturnsCopy(t *testing.T) {
	raw := api.Spec()
	raw[0] = 'X'

	assert.NotEqual(t, raw[0], api.Spec()[0])
}
