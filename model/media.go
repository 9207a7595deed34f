package model

import (
	"fmt"
	"strings"
)

// MediaKind is the declared resource kind of a playable reference.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// ParseMediaKind accepts "video" or "audio" (case-insensitive).
func ParseMediaKind(s string) (MediaKind, error) {
	switch k := MediaKind(strings.ToLower(strings.TrimSpace(s))); k {
	case MediaVideo, MediaAudio:
		return k, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}
