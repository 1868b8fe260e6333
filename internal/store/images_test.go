package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chronicle/internal/core/model"
)

func TestDecodeBase64Lenient(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"AQID", []byte{1, 2, 3}},
		{"AQ==", []byte{1}},
		{"AQ", []byte{1}},
		{"A Q\nI D", []byte{1, 2, 3}},
		{"AQIDB", []byte{1, 2, 3}},
		{"*&^", []byte{}},
	}
	for _, tc := range cases {
		got, _ := DecodeBase64(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	data, mime := DecodeBase64("data:image/webp;base64,AQID")
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, "image/webp", mime)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, "jpg", ExtensionFor("IMAGE/JPG"))
	assert.Equal(t, "webp", ExtensionFor("image/webp"))
	assert.Equal(t, "png", ExtensionFor("image/png"))
	assert.Equal(t, "png", ExtensionFor(""))
	assert.Equal(t, "image/jpeg", MIMEFor("jpg"))
}

func TestSaveImage(t *testing.T) {
	s, dir := newCampaign(t)

	path, err := s.SaveImage(model.ImageCharacters, "old_tom", "AQID", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "images/characters/old_tom.jpg", path)
	assert.FileExists(t, filepath.Join(dir, "images", "characters", "old_tom.jpg"))
	assert.True(t, s.ImageExists(model.ImageCharacters, "old_tom"))
	assert.False(t, s.ImageExists(model.ImageCharacters, "nobody"))

	data, mime, err := s.ReadImage(model.ImageCharacters, "old_tom")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, "image/jpeg", mime)

	_, _, err = s.ReadImage(model.ImageCharacters, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveImageReplacesOtherFormats(t *testing.T) {
	s, dir := newCampaign(t)
	_, err := s.SaveImage(model.ImageLocations, "dock_7", "AQID", "image/png")
	require.NoError(t, err)
	_, err = s.SaveImage(model.ImageLocations, "dock_7", "BAUG", "image/webp")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "images", "locations", "dock_7.png"))
	assert.True(t, os.IsNotExist(err))
	path, ok := s.ImagePath(model.ImageLocations, "dock_7")
	assert.True(t, ok)
	assert.Equal(t, "images/locations/dock_7.webp", path)
}

func TestImageProbeOrder(t *testing.T) {
	s, dir := newCampaign(t)
	for _, ext := range []string{"webp", "jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "player", "player."+ext), []byte{1}, 0o644))
	}
	path, ok := s.ImagePath(model.ImagePlayer, model.PlayerImageID)
	assert.True(t, ok)
	assert.Equal(t, "images/player/player.jpg", path)
}

func TestSaveImageValidation(t *testing.T) {
	s, _ := newCampaign(t)

	_, err := s.SaveImage("secrets", "x", "AQID", "image/png")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.SaveImage(model.ImageCharacters, "../x", "AQID", "image/png")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.SaveImage(model.ImageCharacters, "x", "!!!", "image/png")
	assert.ErrorIs(t, err, ErrValidation)

	assert.False(t, s.ImageExists("secrets", "x"))
}

func TestDeleteImage(t *testing.T) {
	s, _ := newCampaign(t)
	_, err := s.SaveImage(model.ImageCharacters, "ben", "AQID", "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteImage(model.ImageCharacters, "ben"))
	assert.False(t, s.ImageExists(model.ImageCharacters, "ben"))
	require.NoError(t, s.DeleteImage(model.ImageCharacters, "ben"), "deleting twice is fine")
}
