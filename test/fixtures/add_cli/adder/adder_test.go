package adder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	assert.Equal(t, 5, Add(2, 3))
	assert.Equal(t, 5, Add(-5, 10))
	assert.Equal(t, 0, Add(0, 0))
	assert.Equal(t, -10, Add(-4, -6))
}
