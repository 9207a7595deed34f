// Package finder answers match and recommendation queries against the track
// catalog and attaches playable media URLs to the results.
package finder

import (
	"context"
	"errors"

	"hzfm/logger"
	"hzfm/match"
	"hzfm/model"
	"hzfm/tuning"
)

// ErrNoTracks is returned by Recommend when the catalog is empty.
var ErrNoTracks = errors.New("catalog has no tracks")

// SnapshotProvider yields the current metadata table.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) ([]model.TrackRecord, error)
}

// MediaResolver maps a public id to a playable URL.
type MediaResolver interface {
	Resolve(publicID string, kind model.MediaKind) (string, error)
}

// Finder combines the catalog, the match filter and the media resolver.
type Finder struct {
	store    SnapshotProvider
	resolver MediaResolver
}

func New(store SnapshotProvider, resolver MediaResolver) *Finder {
	return &Finder{store: store, resolver: resolver}
}

// Tracks returns the whole catalog.
func (f *Finder) Tracks(ctx context.Context) ([]model.TrackRecord, error) {
	return f.store.Snapshot(ctx)
}

// Match filters the catalog for the targets. Errors come only from loading
// the catalog; a track whose media cannot be resolved stays in the result
// without a URL.
func (f *Finder) Match(ctx context.Context, targetBpm, targetHz float64, kind model.MediaKind) (*model.MatchResponse, error) {
	snapshot, err := f.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tracks := match.Filter(snapshot, targetBpm, targetHz)
	resp := &model.MatchResponse{
		TargetBPM: targetBpm,
		TargetHz:  targetHz,
		Kind:      kind,
		Count:     len(tracks),
		Matches:   make([]model.Match, 0, len(tracks)),
	}
	for _, t := range tracks {
		resp.Matches = append(resp.Matches, f.resolve(t, kind))
	}
	if resp.Count == 0 {
		resp.Notice = model.NoMatchesNotice
	}
	return resp, nil
}

// Recommend tunes the targets for the profile and returns the nearest track.
func (f *Finder) Recommend(ctx context.Context, bpm, hz float64, p tuning.Profile, kind model.MediaKind) (*model.Recommendation, error) {
	snapshot, err := f.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tunedBpm, tunedHz := tuning.Adjust(bpm, hz, p)
	best, ok := match.Nearest(snapshot, tunedBpm, tunedHz)
	if !ok {
		return nil, ErrNoTracks
	}
	return &model.Recommendation{
		RequestedBPM: bpm,
		RequestedHz:  hz,
		TunedBPM:     tunedBpm,
		TunedHz:      tunedHz,
		Track:        f.resolve(best, kind),
	}, nil
}

func (f *Finder) resolve(t model.TrackRecord, kind model.MediaKind) model.Match {
	m := model.Match{TrackRecord: t}
	url, err := f.resolver.Resolve(t.PublicID, kind)
	if err != nil {
		logger.Warn("skipping playback for track",
			logger.String("publicId", t.PublicID),
			logger.ErrorField(err))
		m.MediaError = err.Error()
		return m
	}
	m.MediaURL = url
	return m
}
