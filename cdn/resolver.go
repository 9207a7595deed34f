// Package cdn builds playable Cloudinary delivery URLs for track identifiers.
package cdn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"

	"hzfm/config"
	"hzfm/model"
)

var extensions = map[model.MediaKind]string{
	model.MediaVideo: "mp4",
	model.MediaAudio: "mp3",
}

var publicIDPattern = regexp.MustCompile(`^[A-Za-z0-9_\-.]+(/[A-Za-z0-9_\-.]+)*$`)

// ErrUnresolvable is wrapped by every MediaResolutionError.
var ErrUnresolvable = errors.New("media cannot be resolved")

// MediaResolutionError reports why a public id has no playable URL.
type MediaResolutionError struct {
	PublicID string
	Kind     model.MediaKind
	Reason   string
}

func (e *MediaResolutionError) Error() string {
	return fmt.Sprintf("resolve %s %q: %s", e.Kind, e.PublicID, e.Reason)
}

func (e *MediaResolutionError) Unwrap() error { return ErrUnresolvable }

// Resolver maps public ids to delivery URLs. It performs no I/O.
type Resolver struct {
	cfg    *config.CloudinaryConfig
	cld    *cloudinary.Cloudinary
	cldErr error
}

// NewResolver creates the Cloudinary client once. A configuration problem is
// reported by every Resolve call rather than here.
func NewResolver(cfg *config.CloudinaryConfig) *Resolver {
	r := &Resolver{cfg: cfg}
	if cfg == nil || strings.TrimSpace(cfg.CloudName) == "" {
		r.cldErr = errors.New("cloud name is not configured")
		return r
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		r.cldErr = err
		return r
	}
	cld.Config.URL.Secure = cfg.Secure
	cld.Config.URL.SignURL = cfg.SignURLs
	cld.Config.URL.Analytics = false
	r.cld = cld
	return r
}

// Resolve returns the delivery URL of publicID for the given kind. Audio is
// served from the video resource type.
func (r *Resolver) Resolve(publicID string, kind model.MediaKind) (string, error) {
	fail := func(reason string) (string, error) {
		return "", &MediaResolutionError{PublicID: publicID, Kind: kind, Reason: reason}
	}

	ext, ok := extensions[kind]
	if !ok {
		return fail("unknown media kind")
	}
	if r.cldErr != nil {
		return fail(r.cldErr.Error())
	}
	if strings.Contains(publicID, "..") || !publicIDPattern.MatchString(publicID) {
		return fail("invalid public id")
	}
	if r.cfg.SignURLs && r.cfg.APISecret == "" {
		return fail("signing requested without an API secret")
	}

	asset, err := r.cld.Video(publicID + "." + ext)
	if err != nil {
		return fail(err.Error())
	}
	url, err := asset.String()
	if err != nil {
		return fail(err.Error())
	}
	return url, nil
}
