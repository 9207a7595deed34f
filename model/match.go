package model

// NoMatchesNotice is shown when a query matches nothing.
const NoMatchesNotice = "no matches"

// NoDataNotice is shown when the metadata table cannot be loaded.
const NoDataNotice = "no data available"

// Match is a matching track with its resolved playback reference.
// MediaURL is empty when the CDN could not resolve the track; MediaError says why.
type Match struct {
	TrackRecord
	MediaURL   string `json:"media_url,omitempty"`
	MediaError string `json:"media_error,omitempty"`
}

// MatchResponse is the result of one filter request.
type MatchResponse struct {
	TargetBPM float64   `json:"target_bpm"`
	TargetHz  float64   `json:"target_hz"`
	Kind      MediaKind `json:"kind"`
	Count     int       `json:"count"`
	Matches   []Match   `json:"matches"`
	Notice    string    `json:"notice,omitempty"`
}

// Recommendation is the nearest track to a set of tuned targets.
type Recommendation struct {
	RequestedBPM float64 `json:"requested_bpm"`
	RequestedHz  float64 `json:"requested_hz"`
	TunedBPM     float64 `json:"bpm"`
	TunedHz      float64 `json:"hz"`
	Track        Match   `json:"track"`
}
