package discover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchSimulator_Extremes(t *testing.T) {
	t.Parallel()

	always := NewMatchSimulator(1, 42)
	never := NewMatchSimulator(0, 42)

	for i := 0; i < 100; i++ {
		require.True(t, always.Matched())
		require.False(t, never.Matched())
	}
}

func TestMatchSimulator_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	a := NewMatchSimulator(0.5, 7)
	b := NewMatchSimulator(0.5, 7)

	for i := 0; i < 50; i++ {
		require.Equal(t, a.Matched(), b.Matched())
	}
}
