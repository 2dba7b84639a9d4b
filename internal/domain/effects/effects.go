package effects

import (
	"fmt"
	"math/rand/v2"
)

// DefaultParticleCount is how many particles a page spawns at load.
const DefaultParticleCount = 30

// Particle is one floating background dot.
type Particle struct {
	SizePx      float64 `json:"sizePx"`
	LeftVW      float64 `json:"leftVw"`
	DurationSec float64 `json:"durationSec"`
}

// Particles spawns n particles sized 2-10px, placed across the viewport
// width and animated over 10-20s.
func Particles(rng *rand.Rand, n int) []Particle {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Particle{
			SizePx:      rng.Float64()*8 + 2,
			LeftVW:      rng.Float64() * 100,
			DurationSec: rng.Float64()*10 + 10,
		})
	}
	return out
}

// PointerEvent carries a pointer position and the layers to move.
type PointerEvent struct {
	ClientX float64   `json:"clientX"`
	ClientY float64   `json:"clientY"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Layers  []float64 `json:"layers"`
}

// Transform is the translation applied to one parallax layer.
type Transform struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	CSS string  `json:"css"`
}

// Parallax offsets every layer by its speed times the pointer's distance from
// the viewport centre, scaled down by 100. A zero speed counts as 1.
func Parallax(evt PointerEvent) []Transform {
	x := (evt.ClientX - evt.Width/2) / 100
	y := (evt.ClientY - evt.Height/2) / 100

	out := make([]Transform, 0, len(evt.Layers))
	for _, speed := range evt.Layers {
		if speed == 0 {
			speed = 1
		}
		tx, ty := x*speed, y*speed
		out = append(out, Transform{
			X:   tx,
			Y:   ty,
			CSS: fmt.Sprintf("translate(%gpx, %gpx)", tx, ty),
		})
	}
	return out
}
