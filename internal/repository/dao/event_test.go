package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_CapacityShrink(t *testing.T) {
	truncateAll(t)

	capacity := 10
	event := createTestEvent(t, func(e *Event) { e.Capacity = &capacity })
	rd := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	for _, userID := range []uint{101, 102, 103} {
		_, err := rd.Insert(context.Background(), registrationOf(event.ID, userID), now)
		require.NoError(t, err)
	}

	d := NewEventDAO(testDB)

	// Shrinking below the current registrants is refused and nothing
	// is persisted.
	smaller := 2
	event.Capacity = &smaller
	_, err := d.Update(context.Background(), event)
	assert.ErrorIs(t, err, ErrCapacityBelowRegistered)

	stored, err := d.FindByID(context.Background(), event.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Capacity)
	assert.Equal(t, 10, *stored.Capacity)
	assert.Equal(t, 3, stored.RegisteredCount)

	// Shrinking to exactly the registered count is fine.
	exact := 3
	event.Capacity = &exact
	updated, err := d.Update(context.Background(), event)
	require.NoError(t, err)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 3, *updated.Capacity)

	// Dropping the cap entirely is always allowed.
	event.Capacity = nil
	updated, err = d.Update(context.Background(), event)
	require.NoError(t, err)
	assert.Nil(t, updated.Capacity)
}
