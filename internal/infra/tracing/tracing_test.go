package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"yen-network/internal/infra/tracing"
)

func TestInitTracerWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := tracing.InitTracer(context.Background(), tracing.Options{ServiceName: "yen-api"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}
