package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/gravwell/common"
)

const (
	toneDuration = 180 * time.Millisecond
	toneHigh     = 880.0
	toneLow      = 90.0
	// maxVoices caps concurrently playing merge tones.
	maxVoices = 6
)

const sampleRate = beep.SampleRate(AudioSampleRate)

// MergeFrequency falls from toneHigh for light merges to toneLow for heavy
// ones on a log mass scale.
func MergeFrequency(mass float64) float64 {
	return common.Lerp(toneHigh, toneLow, common.LogT(mass, common.LightMass, common.HeavyMass))
}

// decay fades a stream out exponentially.
type decay struct {
	streamer beep.Streamer
	pos      int
	k        float64
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-d.k * float64(d.pos))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// ToneStreamer returns a finite, decaying sine at freq scaled by volume (0..1).
func ToneStreamer(freq, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(toneDuration)
	src := beep.Take(n, &decay{streamer: sine, k: 5.0 / float64(n)})
	if volume <= 0 {
		return &effects.Volume{Streamer: src, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: src, Base: 2, Volume: math.Log2(volume)}, nil
}

// RenderPCM drains s into 16-bit little-endian stereo PCM, the format ebiten
// players accept.
func RenderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = common.Clamp(v, -1, 1)
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// TonePlayer plays merge tones through the ebiten audio context, at most one
// new tone per frame.
type TonePlayer struct {
	enabled   bool
	volume    float64
	queued    float64
	frequency func(mass float64) float64
	players   []*audio.Player
}

func NewTonePlayer(enabled bool, volume float64) *TonePlayer {
	return &TonePlayer{
		enabled:   enabled,
		volume:    common.Clamp(volume, 0, 1),
		frequency: MergeFrequency,
	}
}

func (p *TonePlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *TonePlayer) Enabled() bool {
	return p.enabled
}

// Queue records a merge of the given mass; the heaviest merge of the frame
// wins.
func (p *TonePlayer) Queue(mass float64) {
	if mass > p.queued {
		p.queued = mass
	}
}

// Flush plays the queued tone, if any, and reports whether one started.
func (p *TonePlayer) Flush() (bool, error) {
	mass := p.queued
	p.queued = 0
	if !p.enabled || mass <= 0 {
		return false, nil
	}

	live := p.players[:0]
	for _, pl := range p.players {
		if pl.IsPlaying() {
			live = append(live, pl)
		} else {
			_ = pl.Close()
		}
	}
	p.players = live
	if len(p.players) >= maxVoices {
		return false, nil
	}

	tone, err := ToneStreamer(p.frequency(mass), p.volume)
	if err != nil {
		return false, fmt.Errorf("merge tone for mass %g: %w", mass, err)
	}
	pl := AudioContext().NewPlayerFromBytes(RenderPCM(tone))
	pl.Play()
	p.players = append(p.players, pl)
	return true, nil
}
