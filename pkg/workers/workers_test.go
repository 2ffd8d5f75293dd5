package workers

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/praise/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestEnumerateMatchesExtensionsCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bob.JPG", nil)
	writeFile(t, dir, "alice.png", nil)
	writeFile(t, dir, "carol.WebP", nil)
	writeFile(t, dir, "dave.jpeg", nil)
	writeFile(t, dir, "notes.txt", nil)
	writeFile(t, dir, "png", nil)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0755))

	got, err := Enumerate(dir, Options{Placeholders: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, Names(got))
	for _, w := range got {
		assert.False(t, w.Placeholder)
		assert.Equal(t, dir, filepath.Dir(w.Path))
	}
}

func TestEnumerateExample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.png", nil)
	writeFile(t, dir, "bob.jpg", nil)

	got, err := Enumerate(dir, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Name)
	assert.Equal(t, filepath.Join(dir, "alice.png"), got[0].Path)
	assert.Equal(t, "bob", got[1].Name)
}

func TestEnumerateFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	photos := t.TempDir()
	writeFile(t, dir, "alice.png", pngBytes(t))
	target := writeFile(t, photos, "carol-original.png", pngBytes(t))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "carol.png")))
	require.NoError(t, os.Symlink(filepath.Join(photos, "missing.png"), filepath.Join(dir, "dangling.png")))
	require.NoError(t, os.Mkdir(filepath.Join(photos, "album.png"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(photos, "album.png"), filepath.Join(dir, "album.png")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0755))

	got, err := Enumerate(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, Names(got))
	assert.Equal(t, filepath.Join(dir, "carol.png"), got[1].Path)
}

func TestEnumerateSkipsNamelessFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".png", nil)
	writeFile(t, dir, ".JPG", nil)

	got, err := Enumerate(dir, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	writeFile(t, dir, "dave.png", nil)
	got, err = Enumerate(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dave"}, Names(got))
}

func TestEnumerateFallbackPolicies(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T) string
		opts      Options
		wantNames []string
	}{
		{
			name:      "missing directory without placeholders",
			setup:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") },
			opts:      Options{},
			wantNames: []string{},
		},
		{
			name:      "missing directory with placeholders",
			setup:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") },
			opts:      Options{Placeholders: true},
			wantNames: []string{"Worker1", "Worker2", "Worker3", "Worker4"},
		},
		{
			name: "no matching files with placeholders",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "readme.md", nil)
				return dir
			},
			opts:      Options{Placeholders: true, PlaceholderCount: 2},
			wantNames: []string{"Worker1", "Worker2"},
		},
		{
			name:      "empty directory without placeholders",
			setup:     func(t *testing.T) string { return t.TempDir() },
			opts:      Options{},
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Enumerate(dir, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, Names(got))
			for _, w := range got {
				assert.True(t, w.Placeholder)
			}
		})
	}
}

func TestPlaceholderPaths(t *testing.T) {
	got := Placeholders("/assets", 0)
	require.Len(t, got, DefaultPlaceholderCount)
	assert.Equal(t, "/assets/worker1.png", got[0].Path)
	assert.Equal(t, "/assets/worker4.png", got[3].Path)
}

func TestEnumerateExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.png", nil)
	writeFile(t, dir, "alice.draft.png", nil)
	writeFile(t, dir, "bob.jpg", nil)

	got, err := Enumerate(dir, Options{Exclude: []string{"*.draft.*", "bob.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, Names(got))
}

func TestEnumerateCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.png", nil)
	writeFile(t, dir, "bob.gif", nil)

	got, err := Enumerate(dir, Options{Extensions: []string{"GIF"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, Names(got))
}

func TestEnumerateUnreadableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read any directory")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0000))
	defer os.Chmod(dir, 0755)

	_, err := Enumerate(dir, Options{Placeholders: true})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAssetsUnreadable, errors.GetCode(err))
}

func TestEncodePNGTranscodes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bob.jpg", jpegBytes(t))

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(path, &buf))

	img, format, err := image.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2, img.Bounds().Dx())
}

func TestDataURL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "alice.png", pngBytes(t))

	url, err := DataURL(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestDataURLErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := DataURL(filepath.Join(dir, "missing.png"))
	assert.Equal(t, errors.ErrCodeImageMissing, errors.GetCode(err))

	broken := writeFile(t, dir, "broken.png", []byte("not an image"))
	_, err = DataURL(broken)
	assert.Equal(t, errors.ErrCodeImageDecode, errors.GetCode(err))
}

func TestImageURLFallsBackToPlaceholder(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, PlaceholderURL, ImageURL(Worker{Name: "x", Path: filepath.Join(dir, "x.png")}))
	assert.Equal(t, PlaceholderURL, ImageURL(Placeholders(dir, 1)[0]))

	path := writeFile(t, dir, "alice.png", pngBytes(t))
	assert.NotEqual(t, PlaceholderURL, ImageURL(Worker{Name: "alice", Path: path}))
}
