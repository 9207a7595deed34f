package model

// TrackRecord is one row of the track metadata table.
type TrackRecord struct {
	PublicID string  `json:"public_id"` // CDN identifier used to resolve a playable URL
	BPM      float64 `json:"bpm"`
	HzLow    float64 `json:"hz_low"`  // inclusive
	HzHigh   float64 `json:"hz_high"` // inclusive
	KeyName  string  `json:"key_name"`
}

// HzCenter returns the midpoint of the track's entrainment range.
func (t TrackRecord) HzCenter() float64 {
	return (t.HzLow + t.HzHigh) / 2
}
