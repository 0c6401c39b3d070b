package telemetry_test

import (
	"context"
	"testing"

	"github.com/softnova/crm-console/internal/telemetry"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "crm-console", "  ")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := telemetry.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid())
	span.End()
}
