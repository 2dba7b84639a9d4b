package effects

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParticlesRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	particles := Particles(rng, DefaultParticleCount)

	require.Len(t, particles, 30)
	for _, p := range particles {
		require.GreaterOrEqual(t, p.SizePx, 2.0)
		require.Less(t, p.SizePx, 10.0)
		require.GreaterOrEqual(t, p.LeftVW, 0.0)
		require.Less(t, p.LeftVW, 100.0)
		require.GreaterOrEqual(t, p.DurationSec, 10.0)
		require.Less(t, p.DurationSec, 20.0)
	}
}

func TestParticlesDeterministicWithSeed(t *testing.T) {
	a := Particles(rand.New(rand.NewPCG(7, 7)), 5)
	b := Particles(rand.New(rand.NewPCG(7, 7)), 5)
	require.Equal(t, a, b)
	require.Len(t, Particles(nil, 3), 3)
}

func TestParallax(t *testing.T) {
	got := Parallax(PointerEvent{ClientX: 700, ClientY: 300, Width: 1000, Height: 800, Layers: []float64{0, 2, -1}})

	require.Len(t, got, 3)
	require.Equal(t, Transform{X: 2, Y: -1, CSS: "translate(2px, -1px)"}, got[0])
	require.Equal(t, Transform{X: 4, Y: -2, CSS: "translate(4px, -2px)"}, got[1])
	require.Equal(t, Transform{X: -2, Y: 1, CSS: "translate(-2px, 1px)"}, got[2])
	require.Empty(t, Parallax(PointerEvent{Width: 10, Height: 10}))
}
