// Package match selects tracks whose tempo and entrainment range fit a target.
package match

import (
	"math"

	"hzfm/model"
)

// BPMTolerance is the fixed half-width of the tempo window.
const BPMTolerance = 5.0

// Matches reports whether a single record fits the targets: bpm within
// ±BPMTolerance of targetBpm and targetHz inside [HzLow, HzHigh].
func Matches(t model.TrackRecord, targetBpm, targetHz float64) bool {
	return t.BPM >= targetBpm-BPMTolerance &&
		t.BPM <= targetBpm+BPMTolerance &&
		t.HzLow <= targetHz &&
		t.HzHigh >= targetHz
}

// Filter returns the records of snapshot that match, in snapshot order.
// It never fails; an empty snapshot yields an empty, non-nil slice.
func Filter(snapshot []model.TrackRecord, targetBpm, targetHz float64) []model.TrackRecord {
	out := make([]model.TrackRecord, 0)
	for _, t := range snapshot {
		if Matches(t, targetBpm, targetHz) {
			out = append(out, t)
		}
	}
	return out
}

// Nearest returns the record closest to the targets by Euclidean distance over
// (bpm, hz), using the midpoint of each record's Hz range. The earliest record
// wins ties. ok is false for an empty snapshot.
func Nearest(snapshot []model.TrackRecord, targetBpm, targetHz float64) (best model.TrackRecord, ok bool) {
	bestScore := math.Inf(1)
	for _, t := range snapshot {
		score := math.Hypot(t.BPM-targetBpm, t.HzCenter()-targetHz)
		if score < bestScore {
			best, bestScore, ok = t, score, true
		}
	}
	return best, ok
}
