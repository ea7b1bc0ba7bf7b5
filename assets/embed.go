package assets

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// AudioSampleRate is shared by the ebiten audio context and synthesized tones.
const AudioSampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context

	faceOnce sync.Once
	face     ebtext.Face
)

// AudioContext returns the process-wide ebiten audio context, creating it on
// first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(AudioSampleRate)
		}
	})
	return audioContext
}

// Face is the built-in bitmap font used by the HUD and the control panel.
func Face() ebtext.Face {
	faceOnce.Do(func() {
		face = ebtext.NewGoXFace(basicfont.Face7x13)
	})
	return face
}

// LineHeight is the advance between HUD text lines.
func LineHeight() float64 {
	return float64(basicfont.Face7x13.Metrics().Height.Ceil()) + 2
}
