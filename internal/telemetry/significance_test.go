package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignificantFirstObservation(t *testing.T) {
	assert.True(t, Significant(0.0, nil, 0.5), "no prior logged value is always significant")
}

func TestSignificantThresholdIsInclusive(t *testing.T) {
	last := 12.0

	assert.False(t, Significant(12.49, &last, 0.5))
	assert.True(t, Significant(12.5, &last, 0.5), "a delta equal to the threshold counts")
	assert.True(t, Significant(11.5, &last, 0.5), "drops count the same as rises")
}
