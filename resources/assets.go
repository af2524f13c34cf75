package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	imageDir = "images/"
	soundDir = "sounds/"
)

// Bundled file names.
const (
	AppIcon      = "app_icon.png"
	CSBackground = "cs_background.png"
	CSLogo       = "cs_logo.png"
	AlertFrameA  = "alert_a.png"
	AlertFrameB  = "alert_b.png"
	TimerSound   = "timer.wav"
	StopSound    = "stop.wav"
)

//go:embed images/*.png
var imageFS embed.FS

//go:embed sounds/*.wav
var soundFS embed.FS

var imageCache sync.Map

// Image returns a Fyne resource for the given bundled image.
func Image(fileName string) (fyne.Resource, error) {
	path := imageDir + fileName
	if cached, ok := imageCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := imageFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	imageCache.Store(path, resource)
	return resource, nil
}

// MustImage returns a Fyne resource or panics on error.
func MustImage(fileName string) fyne.Resource {
	resource, err := Image(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Sound returns the raw bytes of a bundled sound.
func Sound(fileName string) ([]byte, error) {
	data, err := soundFS.ReadFile(soundDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", fileName, err)
	}
	return data, nil
}

// AlertFrames returns the frames cycled behind the alert background.
func AlertFrames() []fyne.Resource {
	return []fyne.Resource{MustImage(AlertFrameA), MustImage(AlertFrameB)}
}
