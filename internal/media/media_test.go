package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"stagetimer/internal/core/theme"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0}, want: "image/jpeg"},
		{name: "gif", data: []byte("GIF89a......"), want: "image/gif"},
		{name: "webp", data: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: "image/webp"},
		{name: "text", data: []byte("hello"), want: "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIME(tt.data))
		})
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	data := pngBytes(t, 4, 4)

	ref := EncodeDataURL(data)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))
	assert.True(t, IsDataURL(ref))

	mime, decoded, err := DecodeDataURL(ref)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, data, decoded)
}

func TestEncodeDropsContentTypeParameters(t *testing.T) {
	assert.True(t, strings.HasPrefix(EncodeDataURL([]byte("plain words")), "data:text/plain;base64,"))
}

func TestDecodeDataURLErrors(t *testing.T) {
	_, _, err := DecodeDataURL("res:cs_logo.png")
	assert.ErrorIs(t, err, ErrNotDataURL)

	_, _, err = DecodeDataURL("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:text/plain,hello")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png;base64,***")
	assert.Error(t, err)
}

func TestResource(t *testing.T) {
	assert.Nil(t, Resource(""))
	assert.Nil(t, Resource("https://example.com/logo.png"))
	assert.Nil(t, Resource(theme.ResourcePrefix+"missing.png"))

	bundled := Resource(theme.Default().Logo)
	require.NotNil(t, bundled)
	assert.NotEmpty(t, bundled.Content())

	data := pngBytes(t, 2, 2)
	uploaded := Resource(EncodeDataURL(data))
	require.NotNil(t, uploaded)
	assert.Equal(t, data, uploaded.Content())
	assert.Equal(t, uploaded.Name(), Resource(EncodeDataURL(data)).Name())
}

func TestThumbnailScalesDown(t *testing.T) {
	source := fyne.NewStaticResource("large.png", pngBytes(t, 200, 100))

	thumb := Thumbnail(source, 50)
	require.NotNil(t, thumb)
	assert.NotEqual(t, source.Name(), thumb.Name())

	img, err := imaging.Decode(bytes.NewReader(thumb.Content()))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	assert.Same(t, thumb, Thumbnail(source, 50))
}

func TestThumbnailKeepsSmallAndBrokenImages(t *testing.T) {
	small := fyne.NewStaticResource("small.png", pngBytes(t, 10, 10))
	assert.Equal(t, small, Thumbnail(small, 50))

	broken := fyne.NewStaticResource("broken.png", []byte("not an image"))
	assert.Equal(t, broken, Thumbnail(broken, 50))

	assert.Nil(t, Thumbnail(nil, 50))
}
