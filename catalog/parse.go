package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"hzfm/model"
)

// Column names of the metadata table.
const (
	ColPublicID = "public_id"
	ColBPM      = "bpm"
	ColHzLow    = "hz_low"
	ColHzHigh   = "hz_high"
	ColKeyName  = "key_name"
)

var requiredColumns = []string{ColPublicID, ColBPM, ColHzLow, ColHzHigh}

// Parse reads a CSV metadata table with a header row. Columns are matched by
// name in any order; key_name is optional and unknown columns are ignored.
// Any row with a missing public_id or a missing or non-numeric bpm, hz_low or
// hz_high fails the whole parse. hz_low <= hz_high is not checked.
func Parse(r io.Reader) ([]model.TrackRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, parseErr("empty metadata table")
	}
	if err != nil {
		return nil, parseErr("read header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, parseErr("missing column %q", col)
		}
	}

	records := make([]model.TrackRecord, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErr("read row: %v", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(row) {
			continue
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		number := func(col string) (float64, error) {
			raw := field(col)
			if raw == "" {
				return 0, parseErr("line %d: missing %s", line, col)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, parseErr("line %d: %s %q is not a number", line, col, raw)
			}
			return v, nil
		}

		rec := model.TrackRecord{PublicID: field(ColPublicID), KeyName: field(ColKeyName)}
		if rec.PublicID == "" {
			return nil, parseErr("line %d: missing %s", line, ColPublicID)
		}
		if rec.BPM, err = number(ColBPM); err != nil {
			return nil, err
		}
		if rec.HzLow, err = number(ColHzLow); err != nil {
			return nil, err
		}
		if rec.HzHigh, err = number(ColHzHigh); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
