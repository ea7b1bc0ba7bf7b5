package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const glowKey = "glow"

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// glowImage returns a white radial falloff sprite, generated once.
func glowImage() *ebiten.Image {
	if img := GetImage(glowKey); img != nil {
		return img
	}
	const size = 64
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			if d >= 1 {
				continue
			}
			a := uint8(255 * (1 - d) * (1 - d))
			i := rgba.PixOffset(x, y)
			rgba.Pix[i+0] = a
			rgba.Pix[i+1] = a
			rgba.Pix[i+2] = a
			rgba.Pix[i+3] = a
		}
	}
	img := ebiten.NewImageFromImage(rgba)
	RegisterImage(glowKey, img)
	return img
}
