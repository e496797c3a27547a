package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(42, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 0, CalculateTotalPages(42, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 20))
	assert.Equal(t, 20, CalculateOffset(2, 20))
	assert.Equal(t, 90, CalculateOffset(10, 10))
	assert.Equal(t, 0, CalculateOffset(0, 20))
}
