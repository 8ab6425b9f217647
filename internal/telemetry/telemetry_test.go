package telemetry

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/useradmin/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	orig := getenv
	t.Cleanup(func() { getenv = orig })
	getenv = func(string) string { return "" }

	shutdown := Setup(context.Background(), "useradmin", logging.Discard())
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpointReturnsShutdown(t *testing.T) {
	orig := getenv
	t.Cleanup(func() { getenv = orig })
	getenv = func(k string) string {
		switch k {
		case "OTEL_EXPORTER_OTLP_ENDPOINT":
			return "127.0.0.1:4317"
		case "OTEL_EXPORTER_OTLP_INSECURE":
			return "true"
		}
		return ""
	}

	shutdown := Setup(context.Background(), "useradmin", logging.Discard())
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
