package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/internal/hash"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	id, err := tracker.Track("gate1")
	require.NoError(t, err)
	require.Equal(t, hash.SeriesID("gate1"), id)

	_, err = tracker.Track("gate2")
	require.NoError(t, err)

	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"gate1", "gate2"}, tracker.Names())
}

func TestTracker_EmptyName(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("")
	require.ErrorIs(t, err, errs.ErrInvalidSeriesName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Duplicate(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("gate1")
	require.NoError(t, err)

	_, err = tracker.Track("gate1")
	require.ErrorIs(t, err, errs.ErrDuplicateSeries)
	require.Contains(t, err.Error(), `"gate1"`)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()
	tracker.idOf = func(string) uint64 { return 0x1234567890abcdef }

	_, err := tracker.Track("gate1")
	require.NoError(t, err)

	_, err = tracker.Track("gate2")
	require.ErrorIs(t, err, errs.ErrHashCollision)
	require.Contains(t, err.Error(), `"gate1" and "gate2"`)
	require.Equal(t, []string{"gate1"}, tracker.Names())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("gate1")
	require.NoError(t, err)

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())

	_, err = tracker.Track("gate1")
	require.NoError(t, err, "a reset tracker accepts names again")
}
