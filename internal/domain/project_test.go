package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ProjectStatus
		want     bool
	}{
		{ProjectStatusOpen, ProjectStatusInProgress, true},
		{ProjectStatusOpen, ProjectStatusCancelled, true},
		{ProjectStatusOpen, ProjectStatusCompleted, false},
		{ProjectStatusInProgress, ProjectStatusCompleted, true},
		{ProjectStatusInProgress, ProjectStatusOpen, true},
		{ProjectStatusCompleted, ProjectStatusOpen, false},
		{ProjectStatusCancelled, ProjectStatusOpen, false},
		{ProjectStatusCancelled, ProjectStatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestProjectStatusValid(t *testing.T) {
	assert.True(t, ProjectStatusInProgress.Valid())
	assert.False(t, ProjectStatus("archived").Valid())
	assert.True(t, ProjectStatusCompleted.Terminal())
	assert.False(t, ProjectStatusOpen.Terminal())
}
