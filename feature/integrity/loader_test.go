package integrity

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeature(t *testing.T) {
	feature := NewFeature(&fakeRunner{}, fakeSchema{}, zap.NewNop(), false)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFeature_DisabledWithoutRunner(t *testing.T) {
	feature := NewFeature(nil, fakeSchema{}, nil, false)
	assert.False(t, feature.IsEnabled())
}
