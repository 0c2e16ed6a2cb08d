package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIdentifyRequestsCounter(t *testing.T) {
	before := testutil.ToFloat64(IdentifyRequests.WithLabelValues("matched"))
	IdentifyRequests.WithLabelValues("matched").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(IdentifyRequests.WithLabelValues("matched")))
}

func TestDirectorySizeGauge(t *testing.T) {
	DirectorySize.Set(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(DirectorySize))
}

func TestCollectorsLint(t *testing.T) {
	problems, err := testutil.CollectAndLint(IdentifyErrors)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
