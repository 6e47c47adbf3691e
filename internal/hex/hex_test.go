package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	coords := GenerateBoard()
	for _, a := range coords {
		assert.Equal(t, 0, Distance(a.Coord, a.Coord))
		for _, b := range coords {
			assert.Equal(t, Distance(a.Coord, b.Coord), Distance(b.Coord, a.Coord))
			if a.Coord != b.Coord {
				assert.Positive(t, Distance(a.Coord, b.Coord))
			}
		}
	}
}

func TestNeighborsAllAtDistanceOne(t *testing.T) {
	for _, c := range []Coord{Origin, {Q: 2, R: -1}, {Q: -7, R: 4}} {
		seen := make(map[Coord]bool)
		for _, n := range c.Neighbors() {
			assert.Equal(t, 1, Distance(c, n))
			assert.True(t, c.IsNeighbor(n))
			seen[n] = true
		}
		assert.Len(t, seen, 6)
	}
}

func TestGenerateBoardPointValues(t *testing.T) {
	tiles := GenerateBoard()
	require.Len(t, tiles, 37)

	byRing := map[int]int{}
	for _, tile := range tiles {
		d := Distance(Origin, tile.Coord)
		byRing[d]++
		switch d {
		case 0:
			assert.Equal(t, 5, tile.Points)
		case 1:
			assert.Equal(t, 2, tile.Points)
		case 2:
			assert.Equal(t, 1, tile.Points)
		default:
			assert.Equal(t, 0, tile.Points)
		}
	}
	assert.Equal(t, map[int]int{0: 1, 1: 6, 2: 12, 3: 18}, byRing)
}

func TestRing(t *testing.T) {
	assert.Equal(t, []Coord{Origin}, Ring(0))
	for radius := 1; radius <= BoardRadius; radius++ {
		ring := Ring(radius)
		assert.Len(t, ring, 6*radius)
		for _, c := range ring {
			assert.Equal(t, radius, Distance(Origin, c))
		}
	}
}

func TestSpawnZones(t *testing.T) {
	zones := SpawnZones()
	seen := make(map[Coord]bool)
	for i, zone := range zones {
		require.Len(t, zone, 3, "zone %d", i)
		for _, c := range zone {
			assert.True(t, InBounds(c))
			assert.Equal(t, BoardRadius, Distance(Origin, c))
			assert.False(t, seen[c], "zones overlap at %s", c)
			seen[c] = true
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	c := Coord{Q: -2, R: 3}
	assert.Equal(t, "-2,3", c.Key())
	parsed, err := ParseKey(c.Key())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseKey("nope")
	assert.Error(t, err)
}
