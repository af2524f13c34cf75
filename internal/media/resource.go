package media

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"strings"
	"sync"

	"stagetimer/internal/core/theme"
	"stagetimer/internal/logutil"
	"stagetimer/resources"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var thumbnailCache sync.Map

// Resource resolves a stored image reference into something the UI can draw.
// Empty or unresolvable references yield nil.
func Resource(ref string) fyne.Resource {
	if ref == "" {
		return nil
	}
	if name, ok := theme.BundledName(ref); ok {
		resource, err := resources.Image(name)
		if err != nil {
			logutil.LogError("media: bundled image", err)
			return nil
		}
		return resource
	}
	mime, data, err := DecodeDataURL(ref)
	if err != nil {
		logutil.LogError("media: decode image", err)
		return nil
	}
	return fyne.NewStaticResource(resourceName(mime, data), data)
}

// Thumbnail returns a copy of resource scaled to fit within size pixels.
// Images that cannot be decoded are returned unchanged.
func Thumbnail(resource fyne.Resource, size int) fyne.Resource {
	if resource == nil || size <= 0 {
		return resource
	}
	key := fmt.Sprintf("%s@%d", resource.Name(), size)
	if cached, ok := thumbnailCache.Load(key); ok {
		return cached.(fyne.Resource)
	}

	img, err := imaging.Decode(bytes.NewReader(resource.Content()))
	if err != nil {
		logutil.LogError("media: thumbnail", err)
		return resource
	}
	if fits(img.Bounds(), size) {
		return resource
	}

	var encoded bytes.Buffer
	scaled := imaging.Fit(img, size, size, imaging.Lanczos)
	if err := imaging.Encode(&encoded, scaled, imaging.PNG); err != nil {
		logutil.LogError("media: thumbnail", err)
		return resource
	}

	thumb := fyne.NewStaticResource("thumb-"+resource.Name()+".png", encoded.Bytes())
	thumbnailCache.Store(key, thumb)
	return thumb
}

func fits(bounds image.Rectangle, size int) bool {
	return bounds.Dx() <= size && bounds.Dy() <= size
}

// resourceName derives a stable name so identical uploads share cache entries.
func resourceName(mime string, data []byte) string {
	sum := sha1.Sum(data)
	extension := "img"
	if _, subtype, ok := strings.Cut(mime, "/"); ok && subtype != "" {
		extension = subtype
	}
	return "upload-" + hex.EncodeToString(sum[:8]) + "." + extension
}
