package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusClassification(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.False(t, StatusCancelled.Occupies())
	assert.False(t, StatusCompleted.Occupies())

	assert.True(t, StatusCancelled.Releases())
	assert.True(t, StatusCompleted.Releases())
	assert.False(t, StatusPending.Releases())

	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("shipped").IsValid())
	assert.False(t, Status("").IsValid())
}
