package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-5953.25))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, -12.5, RoundTo(-12.4999, 1))
}
