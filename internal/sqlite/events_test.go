// Unit tests for the activity event log.
package sqlite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satchel-io/satchel/pkg/types"
)

func TestLogEvent(t *testing.T) {
	t.Run("appends and reads back", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)

		s.LogEvent(id, "tutorial_completed", "Finished loops tutorial")

		events, err := s.UserEvents(id, 0)
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, "tutorial_completed", events[0].Type)
		assert.Equal(t, "Finished loops tutorial", events[0].Details)
		assert.Equal(t, id, events[0].UserID)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("empty details read back empty", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)

		s.LogEvent(id, "login", "")

		events, err := s.UserEvents(id, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Empty(t, events[0].Details)
	})

	t.Run("does not panic on a closed store", func(t *testing.T) {
		s := setupStore(t)
		require.NoError(t, s.Close())
		s.LogEvent(1, "login", "swallowed")
	})
}

func TestUserEvents(t *testing.T) {
	t.Run("newest first, bounded by limit", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)

		for i := 1; i <= 5; i++ {
			s.LogEvent(id, "step", fmt.Sprintf("step %d", i))
		}

		events, err := s.UserEvents(id, 3)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "step 5", events[0].Details)
		assert.Equal(t, "step 4", events[1].Details)
		assert.Equal(t, "step 3", events[2].Details)
	})

	t.Run("non-positive limit defaults to 50", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)

		for i := 0; i < 60; i++ {
			s.LogEvent(id, "step", fmt.Sprintf("step %d", i))
		}

		events, err := s.UserEvents(id, 0)
		require.NoError(t, err)
		assert.Len(t, events, types.DefaultEventLimit)
	})

	t.Run("scoped to the requested user", func(t *testing.T) {
		s := setupStore(t)

		ada, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)
		alan, err := s.AddUser("alan", "hash", nil, false)
		require.NoError(t, err)

		s.LogEvent(ada, "step", "ada only")

		events, err := s.UserEvents(alan, 0)
		require.NoError(t, err)
		for _, e := range events {
			assert.Equal(t, alan, e.UserID)
		}
	})
}

// An event insert failure must never surface through the operation that
// triggered it: AddUser still returns a valid ID with the event table gone.
func TestEventFailureDoesNotBlockPrimaryOperation(t *testing.T) {
	s := setupStore(t)

	_, err := s.db.Exec("DROP TABLE user_events")
	require.NoError(t, err)

	id, err := s.AddUser("ada", "hash", nil, false)
	require.NoError(t, err)
	assert.Positive(t, id)

	user, err := s.GetUser("ada")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
}
