package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.2351))
	assert.Equal(t, -1.23, Round2(-1.2349))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.5, SafeDiv(5, 2))
	assert.Equal(t, 0.0, SafeDiv(5, 0))
	assert.Equal(t, 0.0, SafeDiv(0, 0))
	assert.Equal(t, -2.0, SafeDiv(4, -2))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(1.0, 1.0000001, 1e-6))
	assert.False(t, WithinTolerance(1.0, 1.1, 1e-6))
}
