package audio

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	sampleRate = 22050
	pcmFormat  = 1
)

// pinkNoise returns a page flip whoosh: 0.3s of pink noise shaped by a
// quick fade in, a short sustain and a fade out.
func pinkNoise(rng *rand.Rand) []float64 {
	const (
		duration = 0.3
		attack   = 0.05
		sustain  = 0.15
		gain     = 0.15
	)
	n := int(duration * sampleRate)
	out := make([]float64, n)
	var b0, b1, b2, b3, b4, b5, b6 float64
	for i := range out {
		white := rng.Float64()*2 - 1
		b0 = 0.99886*b0 + white*0.0555179
		b1 = 0.99332*b1 + white*0.0750759
		b2 = 0.96900*b2 + white*0.1538520
		b3 = 0.86650*b3 + white*0.3104856
		b4 = 0.55000*b4 + white*0.5329522
		b5 = -0.7616*b5 - white*0.0168980
		v := (b0 + b1 + b2 + b3 + b4 + b5 + b6 + white*0.5362) * 0.11
		b6 = white * 0.115926

		t := float64(i) / sampleRate
		env := gain
		switch {
		case t < attack:
			env = gain * t / attack
		case t > sustain:
			env = gain * (duration - t) / (duration - sustain)
		}
		out[i] = v * env
	}
	return out
}

// chime returns a short rising arpeggio.
func chime() []float64 {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	const noteLen = 0.18
	per := int(noteLen * sampleRate)
	out := make([]float64, per*len(notes))
	for k, f := range notes {
		for i := 0; i < per; i++ {
			t := float64(i) / sampleRate
			decay := math.Exp(-6 * t)
			out[k*per+i] = 0.3 * decay * math.Sin(2*math.Pi*f*t)
		}
	}
	return out
}

// writeWAV encodes samples as mono 16-bit PCM.
func writeWAV(w io.WriteSeeker, samples []float64) error {
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		buf.Data[i] = int(max(-1, min(1, v)) * math.MaxInt16)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return enc.Close()
}
