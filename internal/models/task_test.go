package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Valid(t *testing.T) {
	for _, status := range TaskStatuses {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, TaskStatus("ARCHIVED").Valid())
	assert.False(t, TaskStatus("todo").Valid())
	assert.False(t, TaskStatus("").Valid())
}
