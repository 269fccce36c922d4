package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventIsFull(t *testing.T) {
	capacity := 2

	assert.False(t, (&Event{Capacity: nil, RegisteredCount: 1000}).IsFull())
	assert.False(t, (&Event{Capacity: &capacity, RegisteredCount: 1}).IsFull())
	assert.True(t, (&Event{Capacity: &capacity, RegisteredCount: 2}).IsFull())
	assert.True(t, (&Event{Capacity: &capacity, RegisteredCount: 3}).IsFull())
}

func TestRegistrationWindowOpen(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	t.Run("no bounds", func(t *testing.T) {
		assert.True(t, (&Event{}).RegistrationWindowOpen(now))
	})

	t.Run("not yet open", func(t *testing.T) {
		e := &Event{RegistrationStartDate: &after}
		assert.False(t, e.RegistrationWindowOpen(now))
	})

	t.Run("already closed", func(t *testing.T) {
		e := &Event{RegistrationDeadline: &before}
		assert.False(t, e.RegistrationWindowOpen(now))
	})

	t.Run("inside the window", func(t *testing.T) {
		e := &Event{RegistrationStartDate: &before, RegistrationDeadline: &after}
		assert.True(t, e.RegistrationWindowOpen(now))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		e := &Event{RegistrationStartDate: &now, RegistrationDeadline: &now}
		assert.True(t, e.RegistrationWindowOpen(now))
	})
}
