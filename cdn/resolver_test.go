package cdn

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hzfm/config"
	"hzfm/model"
)

func TestResolve(t *testing.T) {
	r := NewResolver(&config.CloudinaryConfig{CloudName: "dsixore5e", Secure: true})

	url, err := r.Resolve("newagemusic001", model.MediaAudio)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/dsixore5e/video/upload/newagemusic001.mp3", url)

	url, err = r.Resolve("folder/dog", model.MediaVideo)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/dsixore5e/video/upload/folder/dog.mp4", url)

	again, err := r.Resolve("folder/dog", model.MediaVideo)
	require.NoError(t, err)
	assert.Equal(t, url, again)
}

func TestResolveInsecure(t *testing.T) {
	r := NewResolver(&config.CloudinaryConfig{CloudName: "demo"})
	url, err := r.Resolve("x", model.MediaAudio)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://"), url)
	assert.True(t, strings.HasSuffix(url, "/demo/video/upload/x.mp3"), url)
}

func TestResolveSigned(t *testing.T) {
	r := NewResolver(&config.CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s3cret", Secure: true, SignURLs: true})

	url, err := r.Resolve("track", model.MediaAudio)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/video/upload/s--5Wvh68Wy--/track.mp3", url)
}

func TestResolveFailures(t *testing.T) {
	cases := []struct {
		name     string
		cfg      *config.CloudinaryConfig
		publicID string
		kind     model.MediaKind
		reason   string
	}{
		{"no config", nil, "a", model.MediaAudio, "cloud name"},
		{"no cloud name", &config.CloudinaryConfig{}, "a", model.MediaAudio, "cloud name"},
		{"empty id", &config.CloudinaryConfig{CloudName: "c"}, "", model.MediaAudio, "invalid public id"},
		{"space in id", &config.CloudinaryConfig{CloudName: "c"}, "my track", model.MediaAudio, "invalid public id"},
		{"traversal", &config.CloudinaryConfig{CloudName: "c"}, "a/../b", model.MediaAudio, "invalid public id"},
		{"trailing slash", &config.CloudinaryConfig{CloudName: "c"}, "a/", model.MediaAudio, "invalid public id"},
		{"unknown kind", &config.CloudinaryConfig{CloudName: "c"}, "a", model.MediaKind("image"), "unknown media kind"},
		{"sign without secret", &config.CloudinaryConfig{CloudName: "c", SignURLs: true}, "a", model.MediaAudio, "API secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url, err := NewResolver(tc.cfg).Resolve(tc.publicID, tc.kind)
			assert.Empty(t, url)

			var mre *MediaResolutionError
			require.True(t, errors.As(err, &mre))
			assert.Contains(t, mre.Reason, tc.reason)
			assert.ErrorIs(t, err, ErrUnresolvable)
		})
	}
}
