package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRange(t *testing.T) {
	v := New()
	assert.NoError(t, v.IntRange(50, 10, 100))
	assert.NoError(t, v.IntRange(10, 10, 100))
	assert.NoError(t, v.IntRange(100, 10, 100))
	assert.Error(t, v.IntRange(9, 10, 100))
	assert.Error(t, v.IntRange(101, 10, 100))
}

func TestFloatRange(t *testing.T) {
	v := New()
	assert.NoError(t, v.FloatRange(2.0, 1.0, 5.0))
	assert.NoError(t, v.FloatRange(1.0, 1.0, 5.0))
	assert.NoError(t, v.FloatRange(5.0, 1.0, 5.0))
	assert.Error(t, v.FloatRange(0.5, 1.0, 5.0))
	assert.Error(t, v.FloatRange(5.1, 1.0, 5.0))
}

func TestPositiveInt(t *testing.T) {
	v := New()
	assert.NoError(t, v.PositiveInt(1))
	assert.Error(t, v.PositiveInt(0))
	assert.Error(t, v.PositiveInt(-1))
}
