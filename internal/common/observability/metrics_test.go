package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_SpansAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := tracetest.NewSpanRecorder()
	o := New("identify-test", WithRegisterer(reg), WithSpanProcessor(recorder))
	defer o.Shutdown()

	ctx, span := o.StartSpan(context.Background(), "identify.classify")
	o.RecordRequest(ctx, "matched")
	o.RecordStageDuration(ctx, "classify", 120*time.Millisecond)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "identify.classify", ended[0].Name())

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "identify") && strings.Contains(f.GetName(), "requests") {
			found = true
		}
	}
	assert.True(t, found, "request counter exported")
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	ctx, span := o.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.End()
	o.RecordRequest(ctx, "error")
	o.RecordStageDuration(ctx, "classify", time.Second)
	o.Shutdown()
}
