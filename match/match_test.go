package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hzfm/model"
)

func ids(tracks []model.TrackRecord) []string {
	out := make([]string, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.PublicID)
	}
	return out
}

func sampleSnapshot() []model.TrackRecord {
	return []model.TrackRecord{
		{PublicID: "a", BPM: 65, HzLow: 7.0, HzHigh: 8.0},
		{PublicID: "b", BPM: 100, HzLow: 7.0, HzHigh: 8.0},
	}
}

func TestFilterScenarios(t *testing.T) {
	t.Run("tempo window excludes fast track", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, ids(Filter(sampleSnapshot(), 60, 7.83)))
	})

	t.Run("hz outside every range", func(t *testing.T) {
		got := Filter(sampleSnapshot(), 60, 20.0)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFilterBPMBoundary(t *testing.T) {
	target := 60.0
	snapshot := []model.TrackRecord{
		{PublicID: "upper", BPM: target + 5, HzLow: 7, HzHigh: 8},
		{PublicID: "lower", BPM: target - 5, HzLow: 7, HzHigh: 8},
		{PublicID: "over", BPM: target + 5.0001, HzLow: 7, HzHigh: 8},
		{PublicID: "under", BPM: target - 5.0001, HzLow: 7, HzHigh: 8},
	}
	assert.Equal(t, []string{"upper", "lower"}, ids(Filter(snapshot, target, 7.5)))
}

func TestFilterHzContainment(t *testing.T) {
	const targetHz = 7.83
	const eps = 1e-9
	snapshot := []model.TrackRecord{
		{PublicID: "low-edge", BPM: 60, HzLow: targetHz, HzHigh: 9},
		{PublicID: "high-edge", BPM: 60, HzLow: 6, HzHigh: targetHz},
		{PublicID: "just-above", BPM: 60, HzLow: targetHz + eps, HzHigh: 9},
		{PublicID: "just-below", BPM: 60, HzLow: 6, HzHigh: targetHz - eps},
	}
	assert.Equal(t, []string{"low-edge", "high-edge"}, ids(Filter(snapshot, 60, targetHz)))
}

func TestFilterEmptySnapshot(t *testing.T) {
	for _, tc := range []struct{ bpm, hz float64 }{{60, 7.83}, {0, 0}, {-10, 1e9}} {
		got := Filter(nil, tc.bpm, tc.hz)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	snapshot := []model.TrackRecord{
		{PublicID: "z", BPM: 70, HzLow: 4, HzHigh: 8},
		{PublicID: "skip", BPM: 120, HzLow: 4, HzHigh: 8},
		{PublicID: "m", BPM: 68, HzLow: 6, HzHigh: 7},
		{PublicID: "a", BPM: 72, HzLow: 1, HzHigh: 30},
	}
	first := Filter(snapshot, 70, 6.5)
	second := Filter(snapshot, 70, 6.5)

	assert.Equal(t, []string{"z", "m", "a"}, ids(first))
	assert.Equal(t, first, second)
	assert.Len(t, snapshot, 4, "input must not be modified")
}

func TestFilterAcceptsOutOfRangeTargets(t *testing.T) {
	snapshot := []model.TrackRecord{{PublicID: "wide", BPM: 300, HzLow: -100, HzHigh: 100}}
	assert.Equal(t, []string{"wide"}, ids(Filter(snapshot, 298, -50)))
}

func TestNearest(t *testing.T) {
	_, ok := Nearest(nil, 60, 7.83)
	assert.False(t, ok)

	snapshot := []model.TrackRecord{
		{PublicID: "far", BPM: 120, HzLow: 30, HzHigh: 40},
		{PublicID: "close", BPM: 62, HzLow: 7, HzHigh: 9},
		{PublicID: "tie", BPM: 62, HzLow: 7, HzHigh: 9},
	}
	best, ok := Nearest(snapshot, 60, 8)
	require.True(t, ok)
	assert.Equal(t, "close", best.PublicID)
}
