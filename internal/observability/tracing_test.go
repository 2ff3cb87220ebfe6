package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "aurasocial-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, ResultOK, ResultLabel(nil))
	assert.Equal(t, ResultError, ResultLabel(errors.New("x")))
}

func TestMutationsTotal_Increments(t *testing.T) {
	before := testutil.ToFloat64(MutationsTotal.WithLabelValues("like", ResultOK))
	MutationsTotal.WithLabelValues("like", ResultOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(MutationsTotal.WithLabelValues("like", ResultOK)))
}
