// Package tuning applies personal correction factors to tempo and frequency
// targets before matching.
package tuning

// Delta is the correction one profile attribute contributes.
type Delta struct {
	Hz  float64
	BPM float64
}

// Profile describes the listener and listening setup. Empty or unknown
// values contribute no correction.
type Profile struct {
	Gender   string `json:"gender"`
	AgeGroup string `json:"ageGroup"`
	Blood    string `json:"blood"`
	Space    string `json:"space"`
	Device   string `json:"device"`
}

var (
	genderFactors = map[string]Delta{
		"M": {Hz: 0.2, BPM: 0},
		"F": {Hz: -0.1, BPM: -2},
	}
	ageGroupFactors = map[string]Delta{
		"10-20": {Hz: 0.3, BPM: 3},
		"21-30": {Hz: 0.1, BPM: 1},
		"31-40": {Hz: 0, BPM: 0},
		"41-50": {Hz: -0.1, BPM: -1},
		"51-60": {Hz: -0.2, BPM: -2},
		"61-70": {Hz: -0.3, BPM: -3},
		"70+":   {Hz: -0.4, BPM: -4},
	}
	bloodFactors = map[string]Delta{
		"A":  {Hz: 0.1, BPM: 1},
		"B":  {Hz: -0.1, BPM: -1},
		"AB": {Hz: 0.2, BPM: 2},
		"O":  {Hz: 0, BPM: 0},
	}
	spaceFactors = map[string]Delta{
		"Indoor":  {Hz: 0, BPM: 0},
		"Outdoor": {Hz: 0.2, BPM: 2},
	}
	deviceFactors = map[string]Delta{
		"Phone Speaker":    {Hz: 0, BPM: 0},
		"Earphones":        {Hz: 0.1, BPM: 0},
		"External Speaker": {Hz: 0.2, BPM: 1},
	}
)

// Correction sums the deltas of every attribute in p.
func Correction(p Profile) Delta {
	var d Delta
	for _, f := range []Delta{
		genderFactors[p.Gender],
		ageGroupFactors[p.AgeGroup],
		bloodFactors[p.Blood],
		spaceFactors[p.Space],
		deviceFactors[p.Device],
	} {
		d.Hz += f.Hz
		d.BPM += f.BPM
	}
	return d
}

// Adjust returns the targets corrected for p.
func Adjust(bpm, hz float64, p Profile) (float64, float64) {
	d := Correction(p)
	return bpm + d.BPM, hz + d.Hz
}
