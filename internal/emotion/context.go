// Package emotion reinterprets a detected facial emotion using coarse scene
// context taken from the image colours.
package emotion

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"io"

	"github.com/ppiankov/textprobe/internal/model"
)

// dominanceMargin is how far one channel mean must exceed another (0-255 scale)
const dominanceMargin = 10.0

// ChannelMeans holds the mean red, green and blue values of an image
type ChannelMeans struct {
	R, G, B float64
}

// Decode reads a JPEG or PNG image
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Means computes the per-channel mean over every pixel
func Means(img image.Image) ChannelMeans {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return ChannelMeans{}
	}

	var sr, sg, sb float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sr += float64(r >> 8)
			sg += float64(g >> 8)
			sb += float64(b >> 8)
		}
	}
	return ChannelMeans{R: sr / n, G: sg / n, B: sb / n}
}

// DetectContext labels the scene. Blue-dominant images read as an office,
// green-dominant ones as nature; with neither the context is undefined.
func DetectContext(img image.Image) []string {
	return ContextFromMeans(Means(img))
}

// ContextFromMeans applies the colour-dominance rules to precomputed means
func ContextFromMeans(m ChannelMeans) []string {
	var items []string
	if m.B > m.G+dominanceMargin {
		items = append(items, model.ContextOffice)
	}
	if m.G > m.R+dominanceMargin {
		items = append(items, model.ContextNature)
	}
	if len(items) == 0 {
		return []string{model.ContextUndefined}
	}
	return items
}
